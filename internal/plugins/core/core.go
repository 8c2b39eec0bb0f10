// Package coreplugin provides the built-in plugins every theme build starts from:
// the stock design tokens and a default palette with light and dark variants.
package coreplugin

import (
	"fmt"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/tokens"
)

const (
	TokensID = "core-tokens"
	ThemesID = "core-themes"
	version  = "1.0.0"
)

type tokensPlugin struct{}

// NewTokens returns the plugin that contributes the stock design-token tree.
func NewTokens() plugin.Plugin {
	return tokensPlugin{}
}

func (tokensPlugin) PluginMetadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          TokensID,
		Version:     version,
		Name:        "Core design tokens",
		Description: "Spacing, radius, motion, typography, focus, layering and accessibility defaults.",
		License:     "MIT",
		Tags:        []string{"core", "tokens"},
	}
}

func (tokensPlugin) DesignTokens() map[string]any { return tokens.Defaults() }

func (tokensPlugin) Register(plugin.Registrar) error { return nil }

type themesPlugin struct{}

// NewThemes returns the plugin that registers the default palette and the light and dark variants.
func NewThemes() plugin.Plugin {
	return themesPlugin{}
}

func (themesPlugin) PluginMetadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          ThemesID,
		Version:     version,
		Name:        "Core themes",
		Description: "Neutral and status palette with light and dark variants.",
		License:     "MIT",
		Tags:        []string{"core", "themes"},
		Dependencies: []plugin.Dependency{
			{ID: TokensID, Version: "1.x"},
		},
	}
}

var palette = []struct {
	name   string
	source colorref.Source
}{
	{name: "gray", source: colorref.Source{L: 0.45, C: 0.02, H: 260}},
	{name: "silver", source: colorref.Source{L: 0.78, C: 0.01, H: 260}},
	{name: "slate", source: colorref.Source{L: 0.6, C: 0.03, H: 250}},
	{name: "blue", source: colorref.Source{L: 0.55, C: 0.18, H: 255}},
	{name: "green", source: colorref.Source{L: 0.6, C: 0.15, H: 150}},
	{name: "amber", source: colorref.Source{L: 0.75, C: 0.15, H: 75}},
	{name: "red", source: colorref.Source{L: 0.58, C: 0.2, H: 25}},
}

func (themesPlugin) Register(r plugin.Registrar) error {
	for _, entry := range palette {
		def := colorref.Definition{Source: entry.source, Scale: colorref.Steps()}
		if _, err := r.AddColor(entry.name, def); err != nil {
			return err
		}
	}

	light, err := variant(r, map[theme.Token]string{
		theme.Background:      "white50",
		theme.Surface:         "white100",
		theme.SurfaceElevated: "white50",
		theme.SurfaceSubdued:  "gray50",
		theme.Text:            "black900",
		theme.TextMuted:       "gray600",
		theme.TextInverse:     "white50",
		theme.Primary:         "blue600",
		theme.PrimaryHover:    "blue700",
		theme.PrimaryActive:   "blue800",
		theme.Success:         "green600",
		theme.Warning:         "amber500",
		theme.Error:           "red600",
		theme.Info:            "blue500",
		theme.Border:          "slate300",
		theme.BorderStrong:    "slate500",
		theme.Focus:           "blue500",
	})
	if err != nil {
		return err
	}
	if err := r.AddThemeVariant(theme.LightVariant, light); err != nil {
		return err
	}

	dark, err := variant(r, map[theme.Token]string{
		theme.Background:      "black950",
		theme.Surface:         "black900",
		theme.SurfaceElevated: "gray900",
		theme.SurfaceSubdued:  "black800",
		theme.Text:            "white50",
		theme.TextMuted:       "silver300",
		theme.TextInverse:     "black950",
		theme.Primary:         "blue400",
		theme.PrimaryHover:    "blue300",
		theme.PrimaryActive:   "blue200",
		theme.Success:         "green400",
		theme.Warning:         "amber300",
		theme.Error:           "red400",
		theme.Info:            "blue300",
		theme.Border:          "slate600",
		theme.BorderStrong:    "slate400",
		theme.Focus:           "blue400",
	})
	if err != nil {
		return err
	}
	return r.AddThemeVariant(theme.DarkVariant, dark)
}

func variant(r plugin.Registrar, keys map[theme.Token]string) (theme.Tokens, error) {
	out := make(theme.Tokens, len(keys))
	for token, key := range keys {
		ref, ok := r.Color(key)
		if !ok {
			return nil, fmt.Errorf("token %s: color %s is not registered", token, key)
		}
		out[token] = ref
	}
	return out, nil
}
