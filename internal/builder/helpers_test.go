package builder

import (
	"context"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/tokens"
)

type testPlugin struct {
	meta       plugin.Metadata
	register   func(plugin.Registrar) error
	tokens     map[string]any
	beforeHook func(*theme.Config) error
	afterHook  func(*theme.Config) error
}

func (p *testPlugin) PluginMetadata() plugin.Metadata { return p.meta }

func (p *testPlugin) Register(r plugin.Registrar) error {
	if p.register == nil {
		return nil
	}
	return p.register(r)
}

func (p *testPlugin) DesignTokens() map[string]any { return p.tokens }

func (p *testPlugin) BeforeBuild(cfg *theme.Config) error {
	if p.beforeHook == nil {
		return nil
	}
	return p.beforeHook(cfg)
}

func (p *testPlugin) AfterBuild(cfg *theme.Config) error {
	if p.afterHook == nil {
		return nil
	}
	return p.afterHook(cfg)
}

type asyncPlugin struct {
	meta     plugin.Metadata
	register func(context.Context, plugin.Registrar) error
}

func (p *asyncPlugin) PluginMetadata() plugin.Metadata { return p.meta }

func (p *asyncPlugin) RegisterAsync(ctx context.Context, r plugin.Registrar) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- p.register(ctx, r)
	}()
	return done
}

type metadataOnly struct{ meta plugin.Metadata }

func (p metadataOnly) PluginMetadata() plugin.Metadata { return p.meta }

func newPlugin(id string, register func(plugin.Registrar) error) *testPlugin {
	return &testPlugin{meta: plugin.Metadata{ID: id, Version: "1.0.0"}, register: register}
}

func tokenPlugin() *testPlugin {
	p := newPlugin("tokens", nil)
	p.tokens = tokens.Defaults()
	return p
}

var (
	inkSource  = colorref.Source{L: 0.1, C: 0, H: 0}
	paleSource = colorref.Source{L: 0.8, C: 0, H: 0}
)

// paletteTokens maps every semantic token to ink.500 over a white background.
func paletteTokens(r plugin.Registrar) theme.Tokens {
	ink, _ := r.Color("ink500")
	white, _ := r.Color("white50")
	out := theme.Tokens{}
	for _, token := range theme.RequiredTokens() {
		out[token] = ink
	}
	out[theme.Background] = white
	return out
}

// themePlugin registers ink and the given variants over it.
func themePlugin(id string, variants ...string) *testPlugin {
	return newPlugin(id, func(r plugin.Registrar) error {
		if _, err := r.AddColor("ink", colorref.Definition{Source: inkSource, Scale: colorref.Steps()}); err != nil {
			return err
		}
		for _, name := range variants {
			if err := r.AddThemeVariant(name, paletteTokens(r)); err != nil {
				return err
			}
		}
		return nil
	})
}
