package manifestplugin

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/merge"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
)

// Plugin is a theme plugin backed by a parsed manifest.
type Plugin struct {
	source     string
	meta       plugin.Metadata
	manifest   Manifest
	variants   map[string]theme.Tokens
	extensions []theme.Tokens
}

// Source returns the path the manifest was loaded from.
func (p *Plugin) Source() string { return p.source }

func (p *Plugin) PluginMetadata() plugin.Metadata { return p.meta }

// DesignTokens returns a copy of the manifest's token tree, or nil when it declares none.
func (p *Plugin) DesignTokens() map[string]any {
	if len(p.manifest.Tokens) == 0 {
		return nil
	}
	return merge.Clone(p.manifest.Tokens)
}

// Register adds colors in name order, then variants in name order, then
// extensions in the order they are listed.
func (p *Plugin) Register(r plugin.Registrar) error {
	for _, name := range sortedKeys(p.manifest.Colors) {
		spec := p.manifest.Colors[name]
		scale := spec.Scale
		if len(scale) == 0 {
			scale = colorref.Steps()
		}
		if _, err := r.AddColor(name, colorref.Definition{Source: spec.Source, Scale: scale}); err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
	}

	for _, name := range sortedKeys(p.variants) {
		if err := r.AddThemeVariant(name, p.variants[name]); err != nil {
			return err
		}
	}

	for i, ext := range p.manifest.Extends {
		if err := r.ExtendThemeVariant(ext.Base, ext.Name, p.extensions[i]); err != nil {
			return err
		}
	}

	r.Logger().WithFields(map[string]any{
		"source":   p.source,
		"colors":   len(p.manifest.Colors),
		"variants": len(p.variants) + len(p.extensions),
	}).Debug("manifest registered")
	return nil
}

func sortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
