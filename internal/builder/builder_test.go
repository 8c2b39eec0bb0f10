package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/logger"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

func newBufferedBuilder(t *testing.T) (*Builder, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)
	return New(WithLogger(log)), buf
}

func TestNewSeedsFoundationColors(t *testing.T) {
	b := New()

	registry := b.ColorRegistry()
	require.Len(t, registry, 2)
	require.Equal(t, colorref.Steps(), registry["white"].Scale)
	require.Equal(t, colorref.Steps(), registry["black"].Scale)

	ref, ok := b.Color("black950")
	require.True(t, ok)
	require.Equal(t, "black.950", ref.String())
	require.Len(t, b.Colors(), 2*len(colorref.Steps()))
}

func TestAddColorExposesCompoundKeys(t *testing.T) {
	b := New()
	var refs map[colorref.Step]colorref.Ref
	require.NoError(t, b.Use(newPlugin("palette", func(r plugin.Registrar) error {
		var err error
		refs, err = r.AddColor("gray", colorref.Definition{Scale: []colorref.Step{colorref.Step100, colorref.Step500}})
		return err
	})))

	require.Len(t, refs, 2)
	require.Equal(t, "gray.500", refs[colorref.Step500].String())

	ref, ok := b.Color("gray500")
	require.True(t, ok)
	require.Equal(t, refs[colorref.Step500], ref)
	_, ok = b.Color("gray900")
	require.False(t, ok)
}

func TestAddColorRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		color string
		def   colorref.Definition
	}{
		{name: "malformed name", color: "sky-blue", def: colorref.Definition{Scale: []colorref.Step{colorref.Step500}}},
		{name: "empty name", color: "", def: colorref.Definition{Scale: []colorref.Step{colorref.Step500}}},
		{name: "empty scale", color: "sky", def: colorref.Definition{}},
		{name: "unknown step", color: "sky", def: colorref.Definition{Scale: []colorref.Step{colorref.Step500, 525}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			err := b.Use(newPlugin("palette", func(r plugin.Registrar) error {
				_, err := r.AddColor(tc.color, tc.def)
				return err
			}))
			require.Error(t, err)

			var argErr *blueprinterrors.InvalidArgumentError
			require.ErrorAs(t, err, &argErr)
			var pluginErr *blueprinterrors.PluginError
			require.ErrorAs(t, err, &pluginErr)
			require.Equal(t, "palette", pluginErr.Plugin)
		})
	}
}

func TestAddColorOverwriteWarnsAndReplacesSteps(t *testing.T) {
	b, buf := newBufferedBuilder(t)
	require.NoError(t, b.Use(newPlugin("palette", func(r plugin.Registrar) error {
		if _, err := r.AddColor("gray", colorref.Definition{Scale: []colorref.Step{colorref.Step100, colorref.Step900}}); err != nil {
			return err
		}
		_, err := r.AddColor("gray", colorref.Definition{Source: colorref.Source{L: 0.5}, Scale: []colorref.Step{colorref.Step500}})
		return err
	})))

	require.Contains(t, buf.String(), "color already registered")
	_, ok := b.Color("gray100")
	require.False(t, ok)
	_, ok = b.Color("gray500")
	require.True(t, ok)
	require.Equal(t, 0.5, b.ColorRegistry()["gray"].Source.L)
}

func TestAddThemeVariantValidatesTokens(t *testing.T) {
	b := New()
	err := b.Use(newPlugin("partial", func(r plugin.Registrar) error {
		white, _ := r.Color("white50")
		return r.AddThemeVariant("light", theme.Tokens{theme.Background: white})
	}))
	require.Error(t, err)

	var failed *blueprinterrors.ValidationFailedError
	require.ErrorAs(t, err, &failed)
	require.Len(t, failed.Problems, len(theme.RequiredTokens())-1)
	require.Contains(t, err.Error(), `"text"`)
	require.Empty(t, b.Variants())
	require.Empty(t, b.Plugins())
}

func TestAddThemeVariantRejectsMalformedName(t *testing.T) {
	b := New()
	err := b.Use(newPlugin("themes", func(r plugin.Registrar) error {
		return r.AddThemeVariant("Ocean Dark", theme.Tokens{})
	}))

	var argErr *blueprinterrors.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	require.Equal(t, "theme variant name", argErr.Field)
}

func TestAddThemeVariantRecordsOwnerAndWarnsOnOverwrite(t *testing.T) {
	b, buf := newBufferedBuilder(t)
	require.NoError(t, b.Use(themePlugin("ocean", "ocean-dark")))
	require.NoError(t, b.Use(themePlugin("reef", "ocean-dark")))

	require.Contains(t, buf.String(), "theme variant already registered")
	variants := b.Variants()
	require.Len(t, variants, 1)
	require.Equal(t, "reef", variants[0].Owner)
}

func TestExtendThemeVariant(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(themePlugin("base", "light")))

	err := b.Use(newPlugin("ocean", func(r plugin.Registrar) error {
		_, err := r.AddColor("teal", colorref.Definition{Source: colorref.Source{L: 0.3, C: 0.1, H: 190}, Scale: []colorref.Step{colorref.Step600}})
		if err != nil {
			return err
		}
		teal, _ := r.Color("teal600")
		return r.ExtendThemeVariant("light", "ocean-light", theme.Tokens{theme.Primary: teal})
	}))
	require.NoError(t, err)

	variants := b.Variants()
	require.Len(t, variants, 2)
	extended := variants[1]
	require.Equal(t, "ocean-light", extended.Name)
	require.Equal(t, "ocean", extended.Owner)
	require.Equal(t, "light", extended.Base)
	require.Equal(t, "teal.600", extended.Tokens[theme.Primary].String())
	require.Equal(t, "ink.500", extended.Tokens[theme.Text].String())

	// The base variant is untouched.
	require.Equal(t, "ink.500", variants[0].Tokens[theme.Primary].String())
}

func TestExtendThemeVariantErrors(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(themePlugin("base", "light")))

	err := b.Use(newPlugin("ocean", func(r plugin.Registrar) error {
		return r.ExtendThemeVariant("sepia", "ocean-light", nil)
	}))
	var notFound *blueprinterrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "sepia", notFound.Name)

	err = b.Use(newPlugin("ghost", func(r plugin.Registrar) error {
		return r.ExtendThemeVariant("light", "ghost-light", theme.Tokens{theme.Text: colorref.MustNew("ghost", colorref.Step500)})
	}))
	var failed *blueprinterrors.ValidationFailedError
	require.ErrorAs(t, err, &failed)
	require.Contains(t, err.Error(), "ghost.500")
}

func TestUseRejectsInvalidPlugins(t *testing.T) {
	tests := []struct {
		name      string
		candidate plugin.Plugin
	}{
		{name: "nil", candidate: nil},
		{name: "empty id", candidate: newPlugin("", nil)},
		{name: "bad version", candidate: &testPlugin{meta: plugin.Metadata{ID: "ocean", Version: "one"}}},
		{name: "no register", candidate: metadataOnly{meta: plugin.Metadata{ID: "ocean", Version: "1.0.0"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := New().Use(tc.candidate)
			var invalid *blueprinterrors.InvalidPluginError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestUseRejectsAsyncPlugins(t *testing.T) {
	b := New()
	called := false
	p := &asyncPlugin{
		meta: plugin.Metadata{ID: "remote", Version: "1.0.0"},
		register: func(context.Context, plugin.Registrar) error {
			called = true
			return nil
		},
	}

	err := b.Use(p)
	require.ErrorIs(t, err, blueprinterrors.ErrAsyncNotSupported)
	require.False(t, called)
	require.Empty(t, b.Plugins())
}

func TestUseAsyncRegistersPlugin(t *testing.T) {
	b := New()
	p := &asyncPlugin{
		meta: plugin.Metadata{ID: "remote", Version: "1.0.0"},
		register: func(_ context.Context, r plugin.Registrar) error {
			_, err := r.AddColor("ink", colorref.Definition{Source: inkSource, Scale: colorref.Steps()})
			if err != nil {
				return err
			}
			return r.AddThemeVariant("remote-light", paletteTokens(r))
		},
	}

	require.NoError(t, b.UseAsync(context.Background(), p))
	require.Equal(t, map[string][]string{"remote": {"remote-light"}}, b.ThemeVariantsByPlugin())

	// Synchronous plugins are accepted too.
	require.NoError(t, b.UseAsync(context.Background(), tokenPlugin()))
	require.Len(t, b.Plugins(), 2)
}

func TestUseAsyncHonoursContext(t *testing.T) {
	b := New()
	release := make(chan struct{})
	defer close(release)

	p := &asyncPlugin{
		meta: plugin.Metadata{ID: "slow", Version: "1.0.0"},
		register: func(context.Context, plugin.Registrar) error {
			<-release
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.UseAsync(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, b.Plugins())
}

func TestUseAsyncClosesRegistrarAfterTimeout(t *testing.T) {
	b := New()
	release := make(chan struct{})
	late := make(chan error, 1)

	p := &asyncPlugin{
		meta: plugin.Metadata{ID: "slow", Version: "1.0.0"},
		register: func(_ context.Context, r plugin.Registrar) error {
			<-release
			_, err := r.AddColor("late", colorref.Definition{Source: inkSource, Scale: colorref.Steps()})
			r.OnDispose(func() error { return nil })
			late <- err
			return err
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := b.UseAsync(ctx, p)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Empty(t, b.Plugins())

	close(release)
	require.ErrorIs(t, <-late, blueprinterrors.ErrRegistrationClosed)

	_, ok := b.Color("late500")
	require.False(t, ok)
	require.Empty(t, b.disposers)
}

func TestRegistrarRejectsUseAfterRegister(t *testing.T) {
	b := New()
	var kept plugin.Registrar
	require.NoError(t, b.Use(newPlugin("stash", func(r plugin.Registrar) error {
		kept = r
		return nil
	})))

	_, err := kept.AddColor("late", colorref.Definition{Source: inkSource, Scale: colorref.Steps()})
	require.ErrorIs(t, err, blueprinterrors.ErrRegistrationClosed)
	require.ErrorIs(t, kept.AddThemeVariant("late", theme.Tokens{}), blueprinterrors.ErrRegistrationClosed)
	require.ErrorIs(t, kept.ExtendThemeVariant("light", "late", nil), blueprinterrors.ErrRegistrationClosed)

	_, ok := kept.Color("white50")
	require.False(t, ok)
	require.Empty(t, kept.Colors())
	require.Equal(t, "stash", kept.PluginID())
	require.Empty(t, b.Variants())
}

func TestUseWrapsRegisterErrors(t *testing.T) {
	b := New()
	boom := errors.New("palette service unavailable")

	err := b.Use(newPlugin("brand", func(plugin.Registrar) error { return boom }))
	require.ErrorIs(t, err, boom)

	var pluginErr *blueprinterrors.PluginError
	require.ErrorAs(t, err, &pluginErr)
	require.Equal(t, "brand", pluginErr.Plugin)
	require.Empty(t, b.Plugins())
}

func TestDuplicatePluginReplacesOwnedVariants(t *testing.T) {
	b, buf := newBufferedBuilder(t)
	require.NoError(t, b.Use(tokenPlugin()))
	require.NoError(t, b.Use(themePlugin("p", "light", "dark", "ocean")))
	require.Equal(t, []string{"light", "dark", "ocean"}, b.ThemeVariantsByPlugin()["p"])

	require.NoError(t, b.Use(themePlugin("p", "light", "dark")))

	require.Contains(t, buf.String(), "plugin already registered")
	require.Equal(t, []string{"light", "dark"}, b.ThemeVariantsByPlugin()["p"])
	require.Len(t, b.Plugins(), 2)

	cfg, err := b.Build()
	require.NoError(t, err)
	require.NotContains(t, cfg.Themes, "ocean")
}

func TestDuplicatePluginKeepsVariantsOwnedByOthers(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(themePlugin("p", "light")))
	require.NoError(t, b.Use(themePlugin("q", "dark")))
	require.NoError(t, b.Use(newPlugin("p", nil)))

	require.Equal(t, map[string][]string{"q": {"dark"}}, b.ThemeVariantsByPlugin())
}

func TestNestedRegistrationAttributesOwnership(t *testing.T) {
	b := New()
	inner := themePlugin("inner", "inner-light")
	outer := newPlugin("outer", func(r plugin.Registrar) error {
		if err := b.Use(inner); err != nil {
			return err
		}
		_, err := r.AddColor("ink", colorref.Definition{Source: inkSource, Scale: colorref.Steps()})
		if err != nil {
			return err
		}
		return r.AddThemeVariant("outer-light", paletteTokens(r))
	})

	require.NoError(t, b.Use(outer))
	require.Equal(t, map[string][]string{
		"inner": {"inner-light"},
		"outer": {"outer-light"},
	}, b.ThemeVariantsByPlugin())
}

func TestBuildRequiresLightAndDark(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))
	require.NoError(t, b.Use(themePlugin("themes", "light")))

	_, err := b.Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "dark")

	b = New()
	require.NoError(t, b.Use(tokenPlugin()))
	require.NoError(t, b.Use(themePlugin("themes", "dark")))

	_, err = b.Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "light")
}

func TestBuildAggregatesEveryProblem(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))
	require.NoError(t, b.Use(newPlugin("pale", func(r plugin.Registrar) error {
		if _, err := r.AddColor("ink", colorref.Definition{Source: paleSource, Scale: colorref.Steps()}); err != nil {
			return err
		}
		return r.AddThemeVariant("light", paletteTokens(r))
	})))

	_, err := b.Build()
	var failed *blueprinterrors.ValidationFailedError
	require.ErrorAs(t, err, &failed)
	require.Greater(t, len(failed.Problems), 1)

	lines := strings.Split(err.Error(), "\n")
	require.Equal(t, failed.Problems, lines)
	require.Contains(t, err.Error(), "dark")
	require.Contains(t, err.Error(), "contrast")
}

func TestBuildWithoutDesignTokensFails(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(themePlugin("themes", "light", "dark")))

	_, err := b.Build()
	require.ErrorIs(t, err, blueprinterrors.ErrNoDesignTokens)

	_, err = b.Validate()
	require.ErrorIs(t, err, blueprinterrors.ErrNoDesignTokens)
}

func TestBuildIsIdempotent(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))
	require.NoError(t, b.Use(themePlugin("themes", "light", "dark")))

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBuildRunsHooksInRegistrationOrder(t *testing.T) {
	b := New()
	var calls []string

	tokens := tokenPlugin()
	tokens.beforeHook = func(*theme.Config) error {
		calls = append(calls, "tokens.before")
		return nil
	}
	tokens.afterHook = func(*theme.Config) error {
		calls = append(calls, "tokens.after")
		return nil
	}

	themes := themePlugin("themes", "light", "dark")
	themes.beforeHook = func(cfg *theme.Config) error {
		calls = append(calls, "themes.before")
		require.Contains(t, cfg.Themes, "light")
		return nil
	}
	themes.afterHook = func(cfg *theme.Config) error {
		calls = append(calls, "themes.after")
		require.Contains(t, cfg.Tokens, "spacing")
		return nil
	}

	require.NoError(t, b.Use(tokens))
	require.NoError(t, b.Use(themes))

	_, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"tokens.before", "themes.before", "tokens.after", "themes.after"}, calls)
}

func TestBuildReassemblesAfterBeforeHooks(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))

	var captured plugin.Registrar
	late := themePlugin("late", "light")
	late.register = func(r plugin.Registrar) error {
		captured = r
		_, err := r.AddColor("ink", colorref.Definition{Source: inkSource, Scale: colorref.Steps()})
		if err != nil {
			return err
		}
		return r.AddThemeVariant("light", paletteTokens(r))
	}
	late.beforeHook = func(cfg *theme.Config) error {
		require.NotContains(t, cfg.Themes, "dark")
		return captured.AddThemeVariant("dark", paletteTokens(captured))
	}
	require.NoError(t, b.Use(late))

	cfg, err := b.Build()
	require.NoError(t, err)
	require.Contains(t, cfg.Themes, "dark")
	require.Equal(t, "late", cfg.ThemeMetadata["dark"].PluginID)
}

func TestBuildWrapsHookErrors(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))
	themes := themePlugin("themes", "light", "dark")
	themes.afterHook = func(*theme.Config) error { return errors.New("write failed") }
	require.NoError(t, b.Use(themes))

	_, err := b.Build()
	var pluginErr *blueprinterrors.PluginError
	require.ErrorAs(t, err, &pluginErr)
	require.Equal(t, "themes", pluginErr.Plugin)
}

func TestDesignTokensMergeInRegistrationOrder(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))

	compact := newPlugin("compact", nil)
	compact.tokens = map[string]any{
		"spacing":       map[string]any{"base": "2px"},
		"accessibility": map[string]any{"minContrastText": 7.0},
	}
	require.NoError(t, b.Use(compact))
	require.NoError(t, b.Use(themePlugin("themes", "light", "dark")))

	cfg, err := b.Build()
	require.NoError(t, err)
	spacing := cfg.Tokens["spacing"].(map[string]any)
	require.Equal(t, "2px", spacing["base"])
	require.Contains(t, spacing, "semantic")
	require.Equal(t, 7.0, cfg.Tokens["accessibility"].(map[string]any)["minContrastText"])

	// Replacing the plugin drops its earlier contribution.
	require.NoError(t, b.Use(newPlugin("compact", nil)))
	cfg, err = b.Build()
	require.NoError(t, err)
	require.Equal(t, "0.25rem", cfg.Tokens["spacing"].(map[string]any)["base"])
}

func TestDisposeRunsEveryCallbackAndClears(t *testing.T) {
	b, buf := newBufferedBuilder(t)
	var ran []string

	require.NoError(t, b.Use(newPlugin("watcher", func(r plugin.Registrar) error {
		r.OnDispose(func() error {
			ran = append(ran, "first")
			return errors.New("close failed")
		})
		r.OnDispose(func() error {
			ran = append(ran, "second")
			panic("misbehaving plugin")
		})
		return nil
	})))
	b.OnDispose(func() error {
		ran = append(ran, "caller")
		return nil
	})

	b.Dispose()

	require.Equal(t, []string{"first", "second", "caller"}, ran)
	require.Contains(t, buf.String(), "close failed")
	require.Contains(t, buf.String(), "misbehaving plugin")
	require.Empty(t, b.Plugins())
	require.Empty(t, b.Variants())
	require.Empty(t, b.Colors())

	// Callbacks are consumed.
	b.Dispose()
	require.Len(t, ran, 3)
}

func TestDisposedBuilderRejectsFurtherUse(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))
	b.Dispose()

	require.ErrorIs(t, b.Use(themePlugin("themes", "light")), blueprinterrors.ErrBuilderDisposed)
	require.ErrorIs(t, b.UseAsync(context.Background(), tokenPlugin()), blueprinterrors.ErrBuilderDisposed)

	_, err := b.Build()
	require.ErrorIs(t, err, blueprinterrors.ErrBuilderDisposed)

	called := false
	b.OnDispose(func() error {
		called = true
		return nil
	})
	b.Dispose()
	require.False(t, called)
}

func TestThemeVariantsByPluginFallsBackToCore(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(themePlugin("themes", "light")))
	b.variants["light"].Owner = ""

	require.Equal(t, map[string][]string{theme.CoreOwner: {"light"}}, b.ThemeVariantsByPlugin())
}

func TestConfigSerializesTokensAtTopLevel(t *testing.T) {
	b := New()
	require.NoError(t, b.Use(tokenPlugin()))
	require.NoError(t, b.Use(themePlugin("themes", "light", "dark")))

	cfg, err := b.Build()
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"colors", "themes", "themeMetadata", "spacing", "radius", "motion", "accessibility"} {
		require.Contains(t, doc, key)
	}
	light := doc["themes"].(map[string]any)["light"].(map[string]any)
	require.Equal(t, "ink.500", light["text"])
	require.Equal(t, "white.50", light["background"])
	require.Equal(t, "themes", doc["themeMetadata"].(map[string]any)["light"].(map[string]any)["pluginId"])

	yamlDoc, err := cfg.ToYAML()
	require.NoError(t, err)
	require.Contains(t, string(yamlDoc), "themeMetadata:")
}
