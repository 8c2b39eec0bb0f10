// Package preview renders built theme variants as terminal swatch cards.
package preview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

// Hex returns the sRGB hex form of an OKLCH source, clamped to the sRGB gamut.
func Hex(src colorref.Source) string {
	return colorful.OkLch(src.L, src.C, src.H).Clamped().Hex()
}

// CardStyle controls the layout of a variant card.
type CardStyle struct {
	Width       int
	Padding     int
	SwatchWidth int
}

// DefaultCardStyle returns the layout used by the CLI.
func DefaultCardStyle() CardStyle {
	return CardStyle{Width: 64, Padding: 1, SwatchWidth: 4}
}

// Card renders one variant of a built configuration.
type Card struct {
	cfg     *theme.Config
	variant string
	style   CardStyle
}

// NewCard returns a card for variant in cfg.
func NewCard(cfg *theme.Config, variant string) *Card {
	return &Card{cfg: cfg, variant: variant, style: DefaultCardStyle()}
}

// WithStyle replaces the card layout.
func (c *Card) WithStyle(style CardStyle) *Card {
	c.style = style
	return c
}

type row struct {
	token string
	ref   string
	hex   string
}

// View renders the card. The frame uses the variant's own border, text and
// background colors; each token row shows a swatch of its source color.
func (c *Card) View() (string, error) {
	rows, err := c.rows()
	if err != nil {
		return "", err
	}
	palette := make(map[string]string, len(rows))
	for _, r := range rows {
		palette[r.token] = r.hex
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette[string(theme.Border)])).
		Foreground(lipgloss.Color(palette[string(theme.Text)])).
		Background(lipgloss.Color(palette[string(theme.Background)])).
		Padding(0, c.style.Padding).
		Width(c.style.Width)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette[string(theme.Primary)]))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette[string(theme.TextMuted)]))

	heading := c.variant
	if meta, ok := c.cfg.ThemeMetadata[c.variant]; ok {
		var details []string
		if meta.PluginID != "" {
			details = append(details, meta.PluginID)
		}
		if meta.Extends != "" {
			details = append(details, "extends "+meta.Extends)
		}
		if len(details) > 0 {
			heading = fmt.Sprintf("%s %s", heading, muted.Render("("+strings.Join(details, ", ")+")"))
		}
	}

	lines := []string{title.Render(heading), ""}
	for _, r := range rows {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(r.hex)).Render(strings.Repeat(" ", c.style.SwatchWidth))
		lines = append(lines, fmt.Sprintf("%s %-16s %-12s %s", swatch, r.token, r.ref, muted.Render(r.hex)))
	}
	return frame.Render(strings.Join(lines, "\n")), nil
}

func (c *Card) rows() ([]row, error) {
	tokens, ok := c.cfg.Themes[c.variant]
	if !ok {
		return nil, blueprinterrors.NewNotFoundError("theme variant", c.variant)
	}

	rows := make([]row, 0, len(tokens))
	for _, token := range theme.RequiredTokens() {
		text, ok := tokens[string(token)]
		if !ok {
			continue
		}
		ref, ok := colorref.Resolve(text)
		if !ok {
			return nil, blueprinterrors.NewInvalidArgumentError("color reference", text, "cannot be resolved")
		}
		entry, ok := c.cfg.Colors[ref.Name()]
		if !ok || !slices.Contains(entry.Scale, ref.Step()) {
			return nil, blueprinterrors.NewNotFoundError("color", text)
		}
		rows = append(rows, row{token: string(token), ref: text, hex: Hex(entry.Source)})
	}
	return rows, nil
}

// Variants returns the variant names of cfg with light and dark first and the
// rest sorted.
func Variants(cfg *theme.Config) []string {
	var names []string
	for name := range cfg.Themes {
		if name != theme.LightVariant && name != theme.DarkVariant {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var out []string
	for _, name := range []string{theme.LightVariant, theme.DarkVariant} {
		if _, ok := cfg.Themes[name]; ok {
			out = append(out, name)
		}
	}
	return append(out, names...)
}
