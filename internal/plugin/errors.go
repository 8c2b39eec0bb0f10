package plugin

import (
	"fmt"
	"strings"
)

// ErrCircularDependency is returned when plugins cannot be ordered because of a
// dependency cycle or an edge into a plugin that was never supplied.
type ErrCircularDependency struct {
	// Excluded lists every plugin id left out of the resolved order.
	Excluded []string
	// Missing lists dependency ids that were referenced but not supplied.
	Missing []string
}

func (e ErrCircularDependency) Error() string {
	msg := fmt.Sprintf("circular dependency detected among plugins: %s", strings.Join(e.Excluded, ", "))
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf("\nHint: dependencies %s were not supplied; optional dependencies still count as ordering edges", strings.Join(e.Missing, ", "))
	} else {
		msg += "\nHint: break the cycle by removing or refactoring one of the dependencies"
	}
	return msg
}

// ErrVersionConflict captures a dependency whose registered version falls outside the declared range.
type ErrVersionConflict struct {
	Plugin        string
	Dependency    string
	Constraint    string
	ActualVersion string
}

func (e ErrVersionConflict) Error() string {
	return fmt.Sprintf(
		"plugin '%s' requires '%s' %s but version %s is registered",
		e.Plugin,
		e.Dependency,
		e.Constraint,
		e.ActualVersion,
	)
}

// ErrMissingDependency is returned when a required dependency has not been registered.
type ErrMissingDependency struct {
	Plugin     string
	Dependency string
}

func (e ErrMissingDependency) Error() string {
	return fmt.Sprintf(
		"plugin '%s' depends on '%s' which is not registered",
		e.Plugin,
		e.Dependency,
	)
}
