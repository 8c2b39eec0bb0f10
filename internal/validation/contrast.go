package validation

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
)

// RelativeLuminance converts an OKLCH source to WCAG relative luminance.
// Out-of-gamut colors are clamped into sRGB first.
func RelativeLuminance(src colorref.Source) float64 {
	r, g, b := colorful.OkLch(src.L, src.C, src.H).Clamped().LinearRgb()
	return 0.2126*clampUnit(r) + 0.7152*clampUnit(g) + 0.0722*clampUnit(b)
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in [1, 21].
func ContrastRatio(a, b colorref.Source) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
