package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAsyncNotSupported is returned by Builder.Use when a plugin only registers asynchronously.
	ErrAsyncNotSupported = errors.New("plugin registers asynchronously; use UseAsync")
	// ErrNoDesignTokens is returned when a configuration is assembled before any plugin contributed design tokens.
	ErrNoDesignTokens = errors.New("no plugin contributed design tokens")
	// ErrRegistrationClosed is returned by a Registrar used after its plugin's registration ended.
	ErrRegistrationClosed = errors.New("plugin registration has ended")
	// ErrBuilderDisposed is returned by a Builder used after Dispose.
	ErrBuilderDisposed = errors.New("builder has been disposed")
)

// ParseError represents a manifest parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvalidArgumentError reports a malformed name, step or payload passed to a registry call.
type InvalidArgumentError struct {
	Field   string
	Value   string
	Message string
}

// NewInvalidArgumentError constructs an InvalidArgumentError.
func NewInvalidArgumentError(field, value, message string) error {
	return &InvalidArgumentError{Field: field, Value: value, Message: message}
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// InvalidPluginError reports a plugin whose shape cannot be registered.
type InvalidPluginError struct {
	Plugin  string
	Message string
	Err     error
}

// NewInvalidPluginError constructs an InvalidPluginError.
func NewInvalidPluginError(plugin, message string, err error) error {
	return &InvalidPluginError{Plugin: plugin, Message: message, Err: err}
}

func (e *InvalidPluginError) Error() string {
	if e == nil {
		return ""
	}
	if e.Plugin != "" {
		return fmt.Sprintf("invalid plugin [%s]: %s", e.Plugin, e.Message)
	}
	return fmt.Sprintf("invalid plugin: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *InvalidPluginError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a lookup of an unregistered entity.
type NotFoundError struct {
	Kind string
	Name string
}

// NewNotFoundError constructs a NotFoundError.
func NewNotFoundError(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// PluginError indicates a failure raised while a plugin was registering or running a hook.
type PluginError struct {
	Plugin  string
	Message string
	Err     error
}

// NewPluginError constructs a PluginError for the given plugin id.
func NewPluginError(plugin string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PluginError{Plugin: plugin, Message: message, Err: err}
}

func (e *PluginError) Error() string {
	if e == nil {
		return ""
	}
	if e.Plugin != "" {
		return fmt.Sprintf("plugin error [%s]: %s", e.Plugin, e.Message)
	}
	return fmt.Sprintf("plugin error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *PluginError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationFailedError aggregates every content problem found by a validation pass.
type ValidationFailedError struct {
	Subject  string
	Problems []string
}

// NewValidationFailedError constructs a ValidationFailedError. Subject may be empty.
func NewValidationFailedError(subject string, problems []string) error {
	return &ValidationFailedError{Subject: subject, Problems: append([]string(nil), problems...)}
}

// Error lists every problem on its own line, preceded by the subject when set.
func (e *ValidationFailedError) Error() string {
	if e == nil {
		return ""
	}
	body := strings.Join(e.Problems, "\n")
	if e.Subject == "" {
		return body
	}
	return e.Subject + ":\n" + body
}
