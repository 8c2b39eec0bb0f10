package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

type constraintOp int

const (
	opAny constraintOp = iota
	opExact
	opMajor
	opCaret
	opTilde
	opAtLeast
)

// VersionConstraint is a minimal range check over X.Y.Z versions. Supported
// forms: "*", "N.x", "X.Y.Z", "^X.Y.Z", "~X.Y.Z" and ">=X.Y.Z".
type VersionConstraint struct {
	op    constraintOp
	base  version
	raw   string
	major int
}

type version struct {
	major, minor, patch int
}

// ParseVersionConstraint parses a constraint string.
func ParseVersionConstraint(s string) (*VersionConstraint, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("version constraint string is empty")
	}

	if trimmed == "*" {
		return &VersionConstraint{op: opAny, raw: trimmed}, nil
	}

	if strings.HasSuffix(trimmed, ".x") {
		major, err := strconv.Atoi(strings.TrimSuffix(trimmed, ".x"))
		if err != nil || major < 0 {
			return nil, fmt.Errorf("invalid major version in constraint '%s'", s)
		}
		return &VersionConstraint{op: opMajor, major: major, raw: trimmed}, nil
	}

	op := opExact
	rest := trimmed
	switch {
	case strings.HasPrefix(trimmed, ">="):
		op, rest = opAtLeast, strings.TrimSpace(trimmed[2:])
	case strings.HasPrefix(trimmed, "^"):
		op, rest = opCaret, trimmed[1:]
	case strings.HasPrefix(trimmed, "~"):
		op, rest = opTilde, trimmed[1:]
	}

	base, ok := parseVersion(rest)
	if !ok {
		return nil, fmt.Errorf("invalid version constraint '%s' (expected *, N.x, X.Y.Z, ^X.Y.Z, ~X.Y.Z or >=X.Y.Z)", s)
	}
	return &VersionConstraint{op: op, base: base, raw: trimmed}, nil
}

// MustParseVersionConstraint panics if the constraint cannot be parsed.
func MustParseVersionConstraint(s string) *VersionConstraint {
	vc, err := ParseVersionConstraint(s)
	if err != nil {
		panic(err)
	}
	return vc
}

// Satisfies determines whether the provided semantic version satisfies the constraint.
func (vc *VersionConstraint) Satisfies(v string) bool {
	if vc == nil || vc.op == opAny {
		return true
	}
	parsed, ok := parseVersion(v)
	if !ok {
		return false
	}

	switch vc.op {
	case opMajor:
		return parsed.major == vc.major
	case opExact:
		return parsed == vc.base
	case opCaret:
		return parsed.major == vc.base.major && !parsed.less(vc.base)
	case opTilde:
		return parsed.major == vc.base.major && parsed.minor == vc.base.minor && !parsed.less(vc.base)
	case opAtLeast:
		return !parsed.less(vc.base)
	}
	return false
}

// String returns the constraint as written.
func (vc *VersionConstraint) String() string {
	if vc == nil {
		return ""
	}
	return vc.raw
}

// parseVersion reads X.Y.Z, ignoring any pre-release or build suffix.
func parseVersion(s string) (version, bool) {
	trimmed := strings.TrimSpace(s)
	if i := strings.IndexAny(trimmed, "-+"); i >= 0 {
		trimmed = trimmed[:i]
	}
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return version{}, false
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return version{}, false
		}
		nums[i] = n
	}
	return version{major: nums[0], minor: nums[1], patch: nums[2]}, true
}

func (v version) less(other version) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}
