// Package builder composes theme plugins into a single validated configuration.
//
// A Builder owns the color registry, the theme-variant registry and the
// design-token contributions of every registered plugin. It is meant for a
// single owner: register plugins, build once, then Dispose.
package builder

import (
	"context"
	"fmt"
	"slices"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/logger"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/merge"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

// Builder is the theme build orchestrator.
type Builder struct {
	log *logger.Logger

	plugins      []plugin.Plugin
	tokenPayload map[string]map[string]any

	colors    map[string]colorref.Definition
	colorRefs map[string]colorref.Ref

	variants     map[string]*theme.Variant
	variantOrder []string

	disposers []disposer
	disposed  bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger routes builder warnings and plugin logs to log.
func WithLogger(log *logger.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// New returns a builder with the foundational white and black scales registered.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Nop()
	}
	b.reset()
	b.seedFoundationColors()
	return b
}

func (b *Builder) reset() {
	b.plugins = nil
	b.tokenPayload = make(map[string]map[string]any)
	b.colors = make(map[string]colorref.Definition)
	b.colorRefs = make(map[string]colorref.Ref)
	b.variants = make(map[string]*theme.Variant)
	b.variantOrder = nil
	b.disposers = nil
}

func (b *Builder) seedFoundationColors() {
	foundations := map[string]colorref.Source{
		"white": {L: 1, C: 0, H: 0},
		"black": {L: 0, C: 0, H: 0},
	}
	for _, name := range []string{"white", "black"} {
		def := colorref.Definition{Source: foundations[name], Scale: colorref.Steps()}
		if _, err := b.addColor(theme.CoreOwner, name, def); err != nil {
			panic(fmt.Sprintf("foundation color %s: %v", name, err))
		}
	}
}

// Use registers a plugin whose registration completes synchronously.
func (b *Builder) Use(p plugin.Plugin) error {
	if b.disposed {
		return blueprinterrors.ErrBuilderDisposed
	}
	meta, err := admit(p)
	if err != nil {
		return err
	}

	registerer, ok := p.(plugin.Registerer)
	if !ok {
		return blueprinterrors.NewPluginError(meta.ID, blueprinterrors.ErrAsyncNotSupported)
	}

	b.install(meta, p)
	reg := b.registrar(meta.ID)
	err = registerer.Register(reg)
	reg.close()
	if err != nil {
		b.uninstall(meta.ID)
		return blueprinterrors.NewPluginError(meta.ID, err)
	}
	return nil
}

// UseAsync registers a plugin that may need to wait during registration. The
// builder still handles one plugin at a time: UseAsync returns only once the
// plugin has finished registering or ctx is done. Either way the plugin's
// registrar is closed before UseAsync returns.
func (b *Builder) UseAsync(ctx context.Context, p plugin.Plugin) error {
	if b.disposed {
		return blueprinterrors.ErrBuilderDisposed
	}
	meta, err := admit(p)
	if err != nil {
		return err
	}

	async, isAsync := p.(plugin.AsyncRegisterer)
	if !isAsync {
		return b.Use(p)
	}

	b.install(meta, p)
	reg := b.registrar(meta.ID)
	done := async.RegisterAsync(ctx, reg)

	var registerErr error
	select {
	case err, ok := <-done:
		if ok {
			registerErr = err
		}
	case <-ctx.Done():
		registerErr = ctx.Err()
	}
	reg.close()

	if registerErr != nil {
		b.uninstall(meta.ID)
		return blueprinterrors.NewPluginError(meta.ID, registerErr)
	}
	return nil
}

// admit checks that p can be registered at all.
func admit(p plugin.Plugin) (plugin.Metadata, error) {
	if p == nil {
		return plugin.Metadata{}, blueprinterrors.NewInvalidPluginError("", "plugin is nil", nil)
	}
	meta := p.PluginMetadata()
	if err := meta.Validate(); err != nil {
		return meta, blueprinterrors.NewInvalidPluginError(meta.ID, "metadata rejected", err)
	}

	_, isSync := p.(plugin.Registerer)
	_, isAsync := p.(plugin.AsyncRegisterer)
	if !isSync && !isAsync {
		return meta, blueprinterrors.NewInvalidPluginError(meta.ID, "plugin does not implement Register or RegisterAsync", nil)
	}
	return meta, nil
}

// install records p, replacing any plugin registered under the same id.
func (b *Builder) install(meta plugin.Metadata, p plugin.Plugin) {
	if b.hasPlugin(meta.ID) {
		b.log.ForPlugin(meta.ID).Warn("plugin already registered; replacing it and its theme variants")
		b.uninstall(meta.ID)
	}

	b.plugins = append(b.plugins, p)
	if provider, ok := p.(plugin.TokenProvider); ok {
		if payload := provider.DesignTokens(); payload != nil {
			b.tokenPayload[meta.ID] = merge.Clone(payload)
		}
	}
	b.log.WithFields(map[string]any{"plugin": meta.ID, "version": meta.Version}).Debug("plugin installed")
}

// uninstall removes the plugin, its token contribution and every variant it owns.
func (b *Builder) uninstall(id string) {
	b.plugins = slices.DeleteFunc(b.plugins, func(p plugin.Plugin) bool {
		return p.PluginMetadata().ID == id
	})
	delete(b.tokenPayload, id)

	for _, name := range slices.Clone(b.variantOrder) {
		if b.variants[name].Owner == id {
			b.removeVariant(name)
		}
	}
}

func (b *Builder) hasPlugin(id string) bool {
	return slices.ContainsFunc(b.plugins, func(p plugin.Plugin) bool {
		return p.PluginMetadata().ID == id
	})
}

// Plugins returns the registered plugins in registration order.
func (b *Builder) Plugins() []plugin.Plugin {
	return slices.Clone(b.plugins)
}
