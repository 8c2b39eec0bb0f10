package colorref

import (
	"fmt"
	"slices"
)

// Step is one position on a color scale.
type Step int

const (
	Step50  Step = 50
	Step100 Step = 100
	Step200 Step = 200
	Step300 Step = 300
	Step400 Step = 400
	Step500 Step = 500
	Step600 Step = 600
	Step700 Step = 700
	Step800 Step = 800
	Step900 Step = 900
	Step950 Step = 950
)

var allSteps = []Step{Step50, Step100, Step200, Step300, Step400, Step500, Step600, Step700, Step800, Step900, Step950}

// Steps returns the full ordered step range.
func Steps() []Step {
	return slices.Clone(allSteps)
}

// Valid reports whether s belongs to the fixed step set.
func (s Step) Valid() bool {
	return slices.Contains(allSteps, s)
}

// Source is a perceptual OKLCH triple: lightness in [0,1], chroma >= 0, hue in degrees.
type Source struct {
	L float64 `json:"l" yaml:"l"`
	C float64 `json:"c" yaml:"c"`
	H float64 `json:"h" yaml:"h"`
}

func (s Source) String() string {
	return fmt.Sprintf("oklch(%g %g %g)", s.L, s.C, s.H)
}

// Definition is a source color together with the steps generated from it.
type Definition struct {
	Source Source `json:"source" yaml:"source"`
	Scale  []Step `json:"scale" yaml:"scale"`
}

// Validate checks that the scale is non-empty and uses only known steps.
func (d Definition) Validate() error {
	if len(d.Scale) == 0 {
		return fmt.Errorf("scale must not be empty")
	}
	seen := make(map[Step]struct{}, len(d.Scale))
	for _, step := range d.Scale {
		if !step.Valid() {
			return fmt.Errorf("step %d is not one of %v", step, allSteps)
		}
		if _, dup := seen[step]; dup {
			return fmt.Errorf("step %d listed more than once", step)
		}
		seen[step] = struct{}{}
	}
	return nil
}

// HasStep reports whether the scale contains step.
func (d Definition) HasStep(step Step) bool {
	return slices.Contains(d.Scale, step)
}

// Clone returns a copy that does not share the scale slice.
func (d Definition) Clone() Definition {
	return Definition{Source: d.Source, Scale: slices.Clone(d.Scale)}
}
