// Package colorref implements opaque references to a step of a registered color scale.
//
// A Ref can only be obtained through New, MustNew or Resolve, so every Ref in
// circulation carries a validated name and step. It denotes a color; resolving
// it to an actual value is the job of whoever owns the color registry.
package colorref

import (
	"fmt"
	"regexp"
	"strconv"

	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	refPattern  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\.(\d+)$`)
)

// Ref points at one step of a named color scale.
type Ref struct {
	name   string
	step   Step
	sealed bool
}

// New validates name and step and returns a reference to them.
func New(name string, step Step) (Ref, error) {
	if name == "" {
		return Ref{}, blueprinterrors.NewInvalidArgumentError("color name", name, "must not be empty")
	}
	if !namePattern.MatchString(name) {
		return Ref{}, blueprinterrors.NewInvalidArgumentError("color name", name, "must match ^[A-Za-z][A-Za-z0-9]*$")
	}
	if !step.Valid() {
		return Ref{}, blueprinterrors.NewInvalidArgumentError("color step", strconv.Itoa(int(step)), fmt.Sprintf("must be one of %v", Steps()))
	}
	return Ref{name: name, step: step, sealed: true}, nil
}

// MustNew is like New but panics on invalid input. Intended for package-level palettes.
func MustNew(name string, step Step) Ref {
	ref, err := New(name, step)
	if err != nil {
		panic(err)
	}
	return ref
}

// Resolve parses the "<colorName>.<step>" wire format. The boolean is false when
// the text is not a reference: no dot, a non-numeric tail, or an unknown step.
func Resolve(text string) (Ref, bool) {
	matches := refPattern.FindStringSubmatch(text)
	if len(matches) != 3 {
		return Ref{}, false
	}
	value, err := strconv.Atoi(matches[2])
	if err != nil {
		return Ref{}, false
	}
	step := Step(value)
	if !step.Valid() {
		return Ref{}, false
	}
	return Ref{name: matches[1], step: step, sealed: true}, true
}

// Serialize renders ref in the "<colorName>.<step>" wire format.
func Serialize(ref Ref) string {
	return ref.String()
}

// ValidName reports whether name is acceptable as a color name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Key is the compound lookup key for a color step, e.g. "gray500".
func Key(name string, step Step) string {
	return name + strconv.Itoa(int(step))
}

// Name returns the referenced color name.
func (r Ref) Name() string { return r.name }

// Step returns the referenced scale step.
func (r Ref) Step() Step { return r.step }

// Valid reports whether r was produced by a validating constructor.
func (r Ref) Valid() bool { return r.sealed }

// Key returns the compound lookup key of the reference.
func (r Ref) Key() string { return Key(r.name, r.step) }

func (r Ref) String() string {
	if !r.sealed {
		return ""
	}
	return r.name + "." + strconv.Itoa(int(r.step))
}

// MarshalText implements encoding.TextMarshaler using the wire format.
func (r Ref) MarshalText() ([]byte, error) {
	if !r.sealed {
		return nil, fmt.Errorf("cannot marshal an unvalidated color reference")
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Resolve.
func (r *Ref) UnmarshalText(text []byte) error {
	ref, ok := Resolve(string(text))
	if !ok {
		return blueprinterrors.NewInvalidArgumentError("color reference", string(text), `expected "<colorName>.<step>"`)
	}
	*r = ref
	return nil
}
