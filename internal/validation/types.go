package validation

import (
	"github.com/KyleBlankRollins/blueprint-sub000/internal/colorref"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/plugin"
	"github.com/KyleBlankRollins/blueprint-sub000/internal/theme"
)

// IssueType classifies a content-level problem.
type IssueType string

const (
	MissingToken      IssueType = "missing_token"
	InvalidToken      IssueType = "invalid_token"
	InvalidRef        IssueType = "invalid_ref"
	Accessibility     IssueType = "accessibility"
	MissingVariant    IssueType = "missing_variant"
	MissingDependency IssueType = "missing_dependency"
	VersionMismatch   IssueType = "version_mismatch"
)

// Issue is one problem found during validation.
type Issue struct {
	Plugin  string         `json:"plugin,omitempty"`
	Type    IssueType      `json:"type"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// Result captures the outcome of a validation pass.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"errors"`
}

// Messages returns every issue message in report order.
func (r Result) Messages() []string {
	messages := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// Accessor is the read-only view of builder state the validator needs.
type Accessor interface {
	Plugins() []plugin.Plugin
	Variants() []theme.Variant
	ColorRegistry() map[string]colorref.Definition
	ProvisionalConfig() (*theme.Config, error)
	ResolveRef(ref colorref.Ref) (colorref.Source, bool)
}
