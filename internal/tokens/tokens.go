// Package tokens describes the structural design-token tree: its defaults,
// the leaves a configuration must define and dotted-path access into it.
package tokens

import (
	"slices"
	"strconv"
	"strings"
)

// Accessibility threshold paths and their fallbacks.
const (
	MinContrastTextPath = "accessibility.minContrastText"
	MinContrastUIPath   = "accessibility.minContrastUI"

	DefaultMinContrastText = 4.5
	DefaultMinContrastUI   = 3.0
)

// Top-level sections of the design-token tree.
var Sections = []string{"spacing", "radius", "motion", "typography", "focus", "zIndex", "opacity", "breakpoints", "accessibility"}

var requiredLeaves = []string{
	"spacing.base",
	"spacing.semantic.xs",
	"spacing.semantic.sm",
	"spacing.semantic.md",
	"spacing.semantic.lg",
	"spacing.semantic.xl",
	"radius.none",
	"radius.sm",
	"radius.md",
	"radius.lg",
	"radius.full",
	"motion.duration.fast",
	"motion.duration.normal",
	"motion.duration.slow",
	"motion.easing.standard",
	"typography.fontFamily.sans",
	"typography.fontFamily.mono",
	"typography.fontSize.md",
	"focus.ringWidth",
	"focus.ringOffset",
	MinContrastTextPath,
	MinContrastUIPath,
}

// RequiredLeaves returns the dotted paths every configuration must define.
func RequiredLeaves() []string {
	return slices.Clone(requiredLeaves)
}

// Lookup walks tree along a dotted path.
func Lookup(tree map[string]any, path string) (any, bool) {
	var current any = tree
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// MissingLeaves returns every required path that tree does not define, in catalogue order.
func MissingLeaves(tree map[string]any) []string {
	var missing []string
	for _, path := range requiredLeaves {
		value, ok := Lookup(tree, path)
		if !ok || value == nil {
			missing = append(missing, path)
		}
	}
	return missing
}

// Number reads a numeric leaf. It accepts every Go numeric type a decoder may
// produce and strings holding a decimal number, such as a quoted YAML value.
func Number(tree map[string]any, path string) (float64, bool) {
	value, ok := Lookup(tree, path)
	if !ok {
		return 0, false
	}
	return toFloat(value)
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// InvalidThresholds returns the contrast threshold paths that are defined but
// are not positive numbers. Thresholds ignores those values.
func InvalidThresholds(tree map[string]any) []string {
	var invalid []string
	for _, path := range []string{MinContrastTextPath, MinContrastUIPath} {
		value, ok := Lookup(tree, path)
		if !ok || value == nil {
			continue
		}
		if n, ok := toFloat(value); !ok || n <= 0 {
			invalid = append(invalid, path)
		}
	}
	return invalid
}

// Thresholds returns the text and UI contrast minimums, falling back to the WCAG AA defaults.
func Thresholds(tree map[string]any) (text, ui float64) {
	text, ok := Number(tree, MinContrastTextPath)
	if !ok || text <= 0 {
		text = DefaultMinContrastText
	}
	ui, ok = Number(tree, MinContrastUIPath)
	if !ok || ui <= 0 {
		ui = DefaultMinContrastUI
	}
	return text, ui
}
