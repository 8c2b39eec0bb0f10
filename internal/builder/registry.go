package builder

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/logger"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/validation"
	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

// registration is the capability handed to one plugin's Register call. The
// owner travels with it, so every mutation is attributed without shared state.
// Closing it waits for an in-flight mutation; later calls are rejected.
type registration struct {
	b     *Builder
	owner string

	mu     sync.Mutex
	closed bool
}

func (b *Builder) registrar(owner string) *registration {
	return &registration{b: b, owner: owner}
}

func (r *registration) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

func (r *registration) PluginID() string { return r.owner }

func (r *registration) AddColor(name string, def colorref.Definition) (map[colorref.Step]colorref.Ref, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, blueprinterrors.ErrRegistrationClosed
	}
	return r.b.addColor(r.owner, name, def)
}

func (r *registration) AddThemeVariant(name string, tokens theme.Tokens) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return blueprinterrors.ErrRegistrationClosed
	}
	return r.b.addThemeVariant(r.owner, name, tokens)
}

func (r *registration) ExtendThemeVariant(base, newName string, overrides theme.Tokens) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return blueprinterrors.ErrRegistrationClosed
	}
	return r.b.extendThemeVariant(r.owner, base, newName, overrides)
}

func (r *registration) Color(key string) (colorref.Ref, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return colorref.Ref{}, false
	}
	return r.b.Color(key)
}

func (r *registration) Colors() map[string]colorref.Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return r.b.Colors()
}

func (r *registration) OnDispose(fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.Logger().Warn("dispose callback added after registration ended; ignoring it")
		return
	}
	r.b.onDispose(r.owner, fn)
}

func (r *registration) Logger() *logger.Logger { return r.b.log.ForPlugin(r.owner) }

func (b *Builder) addColor(owner, name string, def colorref.Definition) (map[colorref.Step]colorref.Ref, error) {
	if !colorref.ValidName(name) {
		return nil, blueprinterrors.NewInvalidArgumentError("color name", name, "must match ^[A-Za-z][A-Za-z0-9]*$")
	}
	if err := def.Validate(); err != nil {
		return nil, blueprinterrors.NewInvalidArgumentError("color scale", name, err.Error())
	}

	if existing, ok := b.colors[name]; ok {
		b.log.WithFields(map[string]any{"plugin": owner, "color": name}).Warn("color already registered; overwriting")
		for _, step := range existing.Scale {
			delete(b.colorRefs, colorref.Key(name, step))
		}
	}

	refs := make(map[colorref.Step]colorref.Ref, len(def.Scale))
	for _, step := range def.Scale {
		ref, err := colorref.New(name, step)
		if err != nil {
			return nil, err
		}
		refs[step] = ref
	}

	b.colors[name] = def.Clone()
	for _, ref := range refs {
		b.colorRefs[ref.Key()] = ref
	}
	return refs, nil
}

func (b *Builder) addThemeVariant(owner, name string, tokens theme.Tokens) error {
	if !theme.ValidVariantName(name) {
		return blueprinterrors.NewInvalidArgumentError("theme variant name", name, "must be lowercase kebab-case, e.g. ocean-dark")
	}

	if result := validation.ValidateVariant(name, tokens, b.colors); !result.Valid {
		return blueprinterrors.NewValidationFailedError(fmt.Sprintf("theme variant %q", name), result.Messages())
	}

	b.storeVariant(&theme.Variant{Name: name, Tokens: tokens.Clone(), Owner: owner})
	return nil
}

// extendThemeVariant derives a variant by replacing whole tokens of base. The
// derived variant is owned by the extending plugin.
func (b *Builder) extendThemeVariant(owner, base, newName string, overrides theme.Tokens) error {
	baseVariant, ok := b.variants[base]
	if !ok {
		return blueprinterrors.NewNotFoundError("theme variant", base)
	}
	if !theme.ValidVariantName(newName) {
		return blueprinterrors.NewInvalidArgumentError("theme variant name", newName, "must be lowercase kebab-case, e.g. ocean-dark")
	}

	merged := baseVariant.Tokens.Overlay(overrides)
	if result := validation.ValidateVariant(newName, merged, b.colors); !result.Valid {
		return blueprinterrors.NewValidationFailedError(fmt.Sprintf("theme variant %q", newName), result.Messages())
	}

	b.storeVariant(&theme.Variant{Name: newName, Tokens: merged, Owner: owner, Base: base})
	return nil
}

func (b *Builder) storeVariant(variant *theme.Variant) {
	if _, exists := b.variants[variant.Name]; exists {
		b.log.WithFields(map[string]any{"plugin": variant.Owner, "variant": variant.Name}).Warn("theme variant already registered; overwriting")
	} else {
		b.variantOrder = append(b.variantOrder, variant.Name)
	}
	b.variants[variant.Name] = variant
}

func (b *Builder) removeVariant(name string) {
	delete(b.variants, name)
	b.variantOrder = slices.DeleteFunc(b.variantOrder, func(n string) bool { return n == name })
}

// Color looks up a registered reference by compound key, e.g. "gray500".
func (b *Builder) Color(key string) (colorref.Ref, bool) {
	ref, ok := b.colorRefs[key]
	return ref, ok
}

// Colors returns a copy of the compound-key color map.
func (b *Builder) Colors() map[string]colorref.Ref {
	return maps.Clone(b.colorRefs)
}

// ColorRegistry returns a copy of the registered color definitions.
func (b *Builder) ColorRegistry() map[string]colorref.Definition {
	out := make(map[string]colorref.Definition, len(b.colors))
	for name, def := range b.colors {
		out[name] = def.Clone()
	}
	return out
}

// ResolveRef returns the source color of ref if its color and step are registered.
func (b *Builder) ResolveRef(ref colorref.Ref) (colorref.Source, bool) {
	def, ok := b.colors[ref.Name()]
	if !ok || !def.HasStep(ref.Step()) {
		return colorref.Source{}, false
	}
	return def.Source, true
}

// Variants returns copies of the registered theme variants in registration order.
func (b *Builder) Variants() []theme.Variant {
	out := make([]theme.Variant, 0, len(b.variantOrder))
	for _, name := range b.variantOrder {
		variant := *b.variants[name]
		variant.Tokens = variant.Tokens.Clone()
		out = append(out, variant)
	}
	return out
}

// ThemeVariantsByPlugin groups variant names by owning plugin id. Variants
// without an owner are listed under theme.CoreOwner.
func (b *Builder) ThemeVariantsByPlugin() map[string][]string {
	out := make(map[string][]string)
	for _, name := range b.variantOrder {
		owner := b.variants[name].Owner
		if owner == "" {
			owner = theme.CoreOwner
		}
		out[owner] = append(out[owner], name)
	}
	return out
}
