// Package validation checks a theme configuration for completeness and accessibility.
//
// Content problems are collected as Issues so that a single pass reports
// everything; only calls that cannot produce a configuration at all return an error.
package validation

import (
	"errors"
	"fmt"

	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/tokens"
)

type threshold int

const (
	textThreshold threshold = iota
	uiThreshold
)

type contrastPair struct {
	foreground theme.Token
	background theme.Token
	threshold  threshold
}

var contrastPairs = []contrastPair{
	{foreground: theme.Text, background: theme.Background, threshold: textThreshold},
	{foreground: theme.TextMuted, background: theme.Background, threshold: textThreshold},
	{foreground: theme.Border, background: theme.Background, threshold: uiThreshold},
}

// Validate runs every check against the builder state exposed by acc.
func Validate(acc Accessor) (Result, error) {
	cfg, err := acc.ProvisionalConfig()
	if err != nil {
		return Result{}, err
	}

	var issues []Issue
	variants := acc.Variants()

	issues = append(issues, checkRequiredVariants(variants)...)
	issues = append(issues, checkDependencies(acc.Plugins())...)

	registry := acc.ColorRegistry()
	for _, variant := range variants {
		issues = append(issues, variantIssues(variant.Owner, variant.Name, variant.Tokens, registry)...)
	}

	issues = append(issues, checkDesignTokens(cfg.Tokens)...)

	textMin, uiMin := tokens.Thresholds(cfg.Tokens)
	for _, variant := range variants {
		issues = append(issues, checkContrast(variant, acc.ResolveRef, textMin, uiMin)...)
	}

	return Result{Valid: len(issues) == 0, Issues: issues}, nil
}

// ValidateVariant checks that tokens maps every required semantic token to a
// registered color step. It is used when a variant is added or extended.
func ValidateVariant(name string, variantTokens theme.Tokens, registry map[string]colorref.Definition) Result {
	issues := variantIssues("", name, variantTokens, registry)
	return Result{Valid: len(issues) == 0, Issues: issues}
}

func variantIssues(owner, name string, variantTokens theme.Tokens, registry map[string]colorref.Definition) []Issue {
	var issues []Issue
	for _, token := range theme.RequiredTokens() {
		ref, ok := variantTokens[token]
		if !ok || !ref.Valid() {
			issues = append(issues, Issue{
				Plugin:  owner,
				Type:    MissingToken,
				Message: fmt.Sprintf("theme variant %q is missing required token %q", name, token),
				Context: map[string]any{"variant": name, "token": string(token)},
			})
			continue
		}

		def, registered := registry[ref.Name()]
		if !registered || !def.HasStep(ref.Step()) {
			issues = append(issues, Issue{
				Plugin:  owner,
				Type:    InvalidRef,
				Message: fmt.Sprintf("theme variant %q token %q references unregistered color %q", name, token, ref.String()),
				Context: map[string]any{"variant": name, "token": string(token), "ref": ref.String()},
			})
		}
	}
	return issues
}

func checkRequiredVariants(variants []theme.Variant) []Issue {
	present := make(map[string]bool, len(variants))
	for _, variant := range variants {
		present[variant.Name] = true
	}

	var issues []Issue
	for _, name := range []string{theme.LightVariant, theme.DarkVariant} {
		if !present[name] {
			issues = append(issues, Issue{
				Type:    MissingVariant,
				Message: fmt.Sprintf("required theme variant %q is not registered", name),
				Context: map[string]any{"variant": name},
			})
		}
	}
	return issues
}

func checkDependencies(plugins []plugin.Plugin) []Issue {
	var issues []Issue
	for _, err := range plugin.CheckDependencies(plugins) {
		var missing plugin.ErrMissingDependency
		var conflict plugin.ErrVersionConflict
		switch {
		case errors.As(err, &missing):
			issues = append(issues, Issue{
				Plugin:  missing.Plugin,
				Type:    MissingDependency,
				Message: err.Error(),
				Context: map[string]any{"dependency": missing.Dependency},
			})
		case errors.As(err, &conflict):
			issues = append(issues, Issue{
				Plugin:  conflict.Plugin,
				Type:    VersionMismatch,
				Message: err.Error(),
				Context: map[string]any{
					"dependency": conflict.Dependency,
					"constraint": conflict.Constraint,
					"actual":     conflict.ActualVersion,
				},
			})
		default:
			issues = append(issues, Issue{Type: VersionMismatch, Message: err.Error()})
		}
	}
	return issues
}

func checkDesignTokens(tree map[string]any) []Issue {
	var issues []Issue
	for _, path := range tokens.MissingLeaves(tree) {
		issues = append(issues, Issue{
			Type:    MissingToken,
			Message: fmt.Sprintf("design token %q is not defined", path),
			Context: map[string]any{"path": path},
		})
	}
	for _, path := range tokens.InvalidThresholds(tree) {
		issues = append(issues, Issue{
			Type:    InvalidToken,
			Message: fmt.Sprintf("design token %q must be a positive number; using the default", path),
			Context: map[string]any{"path": path},
		})
	}
	return issues
}

func checkContrast(variant theme.Variant, resolve func(colorref.Ref) (colorref.Source, bool), textMin, uiMin float64) []Issue {
	var issues []Issue
	for _, pair := range contrastPairs {
		fgRef, fgOK := variant.Tokens[pair.foreground]
		bgRef, bgOK := variant.Tokens[pair.background]
		if !fgOK || !bgOK {
			continue
		}
		fg, fgResolved := resolve(fgRef)
		bg, bgResolved := resolve(bgRef)
		if !fgResolved || !bgResolved {
			continue
		}

		minimum := textMin
		if pair.threshold == uiThreshold {
			minimum = uiMin
		}
		ratio := ContrastRatio(fg, bg)
		if ratio >= minimum {
			continue
		}

		issues = append(issues, Issue{
			Plugin: variant.Owner,
			Type:   Accessibility,
			Message: fmt.Sprintf("theme variant %q: %s (%s) on %s (%s) has contrast %.2f:1, below %.1f:1",
				variant.Name, pair.foreground, fgRef, pair.background, bgRef, ratio, minimum),
			Context: map[string]any{
				"variant":    variant.Name,
				"foreground": string(pair.foreground),
				"background": string(pair.background),
				"ratio":      ratio,
				"minimum":    minimum,
			},
		})
	}
	return issues
}
