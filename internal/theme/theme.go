// Package theme defines the semantic-token vocabulary and the final configuration artifact.
package theme

import (
	"regexp"
	"slices"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
)

// Token is a semantic, role-based color slot.
type Token string

const (
	Background      Token = "background"
	Surface         Token = "surface"
	SurfaceElevated Token = "surfaceElevated"
	SurfaceSubdued  Token = "surfaceSubdued"
	Text            Token = "text"
	TextMuted       Token = "textMuted"
	TextInverse     Token = "textInverse"
	Primary         Token = "primary"
	PrimaryHover    Token = "primaryHover"
	PrimaryActive   Token = "primaryActive"
	Success         Token = "success"
	Warning         Token = "warning"
	Error           Token = "error"
	Info            Token = "info"
	Border          Token = "border"
	BorderStrong    Token = "borderStrong"
	Focus           Token = "focus"
)

// CoreOwner is reported for variants that no plugin owns.
const CoreOwner = "core"

// Variants every buildable configuration must declare.
const (
	LightVariant = "light"
	DarkVariant  = "dark"
)

var (
	requiredTokens = []Token{
		Background, Surface, SurfaceElevated, SurfaceSubdued,
		Text, TextMuted, TextInverse,
		Primary, PrimaryHover, PrimaryActive,
		Success, Warning, Error, Info,
		Border, BorderStrong, Focus,
	}

	variantNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// RequiredTokens returns the semantic tokens every variant must map.
func RequiredTokens() []Token {
	return slices.Clone(requiredTokens)
}

// ParseToken returns the semantic token named s.
func ParseToken(s string) (Token, bool) {
	token := Token(s)
	return token, slices.Contains(requiredTokens, token)
}

// ValidVariantName reports whether name is acceptable as a theme variant name.
func ValidVariantName(name string) bool {
	return variantNamePattern.MatchString(name)
}

// Tokens maps semantic tokens to color references.
type Tokens map[Token]colorref.Ref

// Clone returns a shallow copy; refs are immutable values.
func (t Tokens) Clone() Tokens {
	out := make(Tokens, len(t))
	for token, ref := range t {
		out[token] = ref
	}
	return out
}

// Overlay returns a copy of t with every entry of overrides replacing the inherited one.
func (t Tokens) Overlay(overrides Tokens) Tokens {
	out := t.Clone()
	for token, ref := range overrides {
		out[token] = ref
	}
	return out
}

// Serialize renders each reference in its wire format.
func (t Tokens) Serialize() map[string]string {
	out := make(map[string]string, len(t))
	for token, ref := range t {
		out[string(token)] = ref.String()
	}
	return out
}

// Variant is a registered theme variant together with its owning plugin.
// Base is set when the variant was derived by extension.
type Variant struct {
	Name   string
	Tokens Tokens
	Owner  string
	Base   string
}
