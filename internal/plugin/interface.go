package plugin

import (
	"context"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/logger"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
)

// Plugin is the contract every theme plugin satisfies. A plugin must also
// implement Registerer or AsyncRegisterer; the builder detects which one via
// type assertion.
type Plugin interface {
	// PluginMetadata returns the plugin's identity and dependencies.
	PluginMetadata() Metadata
}

// Registerer is implemented by plugins whose registration completes synchronously.
type Registerer interface {
	Register(r Registrar) error
}

// AsyncRegisterer is implemented by plugins whose registration has to wait on
// external work. The returned channel yields exactly one value (nil on success)
// and is then closed.
type AsyncRegisterer interface {
	RegisterAsync(ctx context.Context, r Registrar) <-chan error
}

// TokenProvider is implemented by plugins that contribute structural design tokens.
type TokenProvider interface {
	DesignTokens() map[string]any
}

// BeforeBuilder receives the provisional configuration before validation.
type BeforeBuilder interface {
	BeforeBuild(cfg *theme.Config) error
}

// AfterBuilder receives the final configuration once it has been assembled.
type AfterBuilder interface {
	AfterBuild(cfg *theme.Config) error
}

// Registrar is the capability a plugin receives while registering. Every
// mutation made through it is attributed to that plugin.
//
// A registrar is valid only while its plugin is registering. Once Use or
// UseAsync returns, mutators fail with pkg/errors.ErrRegistrationClosed.
type Registrar interface {
	// PluginID returns the id of the plugin the registrar was issued to.
	PluginID() string

	// AddColor registers (or overwrites) a color scale and returns a ref per step.
	AddColor(name string, def colorref.Definition) (map[colorref.Step]colorref.Ref, error)

	// AddThemeVariant registers (or overwrites) a complete variant.
	AddThemeVariant(name string, tokens theme.Tokens) error

	// ExtendThemeVariant derives newName from base with top-level token overrides.
	ExtendThemeVariant(base, newName string, overrides theme.Tokens) error

	// Color looks up a registered ref by compound key, e.g. "gray500".
	Color(key string) (colorref.Ref, bool)

	// Colors returns a copy of the compound-key color map.
	Colors() map[string]colorref.Ref

	// OnDispose schedules fn to run when the builder is disposed.
	OnDispose(fn func() error)

	// Logger returns a logger scoped to the plugin.
	Logger() *logger.Logger
}
