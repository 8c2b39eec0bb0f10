package builder

import (
	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/merge"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/validation"
	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

// accessor exposes builder state to the validator without widening Builder's API.
type accessor struct {
	b *Builder
}

func (a accessor) Plugins() []plugin.Plugin                      { return a.b.Plugins() }
func (a accessor) Variants() []theme.Variant                     { return a.b.Variants() }
func (a accessor) ColorRegistry() map[string]colorref.Definition { return a.b.ColorRegistry() }
func (a accessor) ProvisionalConfig() (*theme.Config, error)     { return a.b.assemble() }
func (a accessor) ResolveRef(ref colorref.Ref) (colorref.Source, bool) {
	return a.b.ResolveRef(ref)
}

// Validate checks the current registry state. The error is reserved for
// states that cannot be assembled at all; content problems are in the Result.
func (b *Builder) Validate() (validation.Result, error) {
	return validation.Validate(accessor{b: b})
}

// Build runs beforeBuild hooks, validates, assembles the final configuration
// and runs afterBuild hooks. Hooks run in registration order.
func (b *Builder) Build() (*theme.Config, error) {
	if b.disposed {
		return nil, blueprinterrors.ErrBuilderDisposed
	}
	provisional, err := b.assemble()
	if err != nil {
		return nil, err
	}

	for _, p := range b.Plugins() {
		hook, ok := p.(plugin.BeforeBuilder)
		if !ok {
			continue
		}
		if err := hook.BeforeBuild(provisional); err != nil {
			return nil, blueprinterrors.NewPluginError(p.PluginMetadata().ID, err)
		}
	}

	result, err := b.Validate()
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		b.log.WithField("errors", len(result.Issues)).Warn("theme configuration failed validation")
		return nil, blueprinterrors.NewValidationFailedError("", result.Messages())
	}

	// Reassembled rather than reused: hooks may have changed registry state.
	final, err := b.assemble()
	if err != nil {
		return nil, err
	}

	for _, p := range b.Plugins() {
		hook, ok := p.(plugin.AfterBuilder)
		if !ok {
			continue
		}
		if err := hook.AfterBuild(final); err != nil {
			return nil, blueprinterrors.NewPluginError(p.PluginMetadata().ID, err)
		}
	}

	b.log.WithFields(map[string]any{
		"plugins":  len(b.plugins),
		"colors":   len(final.Colors),
		"variants": len(final.Themes),
	}).Info("theme configuration built")
	return final, nil
}

// assemble builds a configuration snapshot from current registry state.
func (b *Builder) assemble() (*theme.Config, error) {
	payloads := make([]map[string]any, 0, len(b.tokenPayload))
	for _, p := range b.plugins {
		if payload, ok := b.tokenPayload[p.PluginMetadata().ID]; ok {
			payloads = append(payloads, payload)
		}
	}
	if len(payloads) == 0 {
		return nil, blueprinterrors.ErrNoDesignTokens
	}

	cfg := &theme.Config{
		Colors:        make(map[string]theme.ColorEntry, len(b.colors)),
		Themes:        make(map[string]map[string]string, len(b.variants)),
		ThemeMetadata: make(map[string]theme.VariantMetadata, len(b.variants)),
		Tokens:        merge.DeepMerge(payloads...),
	}

	for name, def := range b.colors {
		clone := def.Clone()
		cfg.Colors[name] = theme.ColorEntry{Source: clone.Source, Scale: clone.Scale}
	}
	for _, name := range b.variantOrder {
		variant := b.variants[name]
		cfg.Themes[name] = variant.Tokens.Serialize()
		cfg.ThemeMetadata[name] = theme.VariantMetadata{PluginID: variant.Owner, Extends: variant.Base}
	}
	return cfg, nil
}
