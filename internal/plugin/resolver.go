package plugin

import (
	"fmt"
)

// SortByDependencies orders plugins so every plugin follows all plugins it depends on.
//
// Every declared dependency counts as an ordering edge, optional or not. A
// plugin whose dependency is absent from the input therefore never becomes
// ready and is reported together with any real cycle. Ties are broken by
// input order. The input slice is not modified.
func SortByDependencies(plugins []Plugin) ([]Plugin, error) {
	byID := make(map[string]Plugin, len(plugins))
	ids := make([]string, 0, len(plugins))
	for _, p := range plugins {
		if p == nil {
			return nil, fmt.Errorf("plugin is nil")
		}
		id := p.PluginMetadata().ID
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("plugin '%s' supplied more than once", id)
		}
		byID[id] = p
		ids = append(ids, id)
	}

	dependents := make(map[string][]string, len(ids))
	inDegree := make(map[string]int, len(ids))
	var missing []string
	seenMissing := map[string]struct{}{}
	for _, id := range ids {
		for _, dep := range byID[id].PluginMetadata().Dependencies {
			dependents[dep.ID] = append(dependents[dep.ID], id)
			inDegree[id]++
			if _, supplied := byID[dep.ID]; !supplied {
				if _, seen := seenMissing[dep.ID]; !seen {
					seenMissing[dep.ID] = struct{}{}
					missing = append(missing, dep.ID)
				}
			}
		}
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]Plugin, 0, len(ids))
	placed := make(map[string]bool, len(ids))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, byID[current])
		placed[current] = true

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) < len(ids) {
		excluded := make([]string, 0, len(ids)-len(sorted))
		for _, id := range ids {
			if !placed[id] {
				excluded = append(excluded, id)
			}
		}
		return nil, ErrCircularDependency{Excluded: excluded, Missing: missing}
	}

	return sorted, nil
}

// CheckDependencies reports every required dependency that is not registered and
// every declared version range the registered dependency does not satisfy.
// Optional dependencies are only version-checked when present.
func CheckDependencies(plugins []Plugin) []error {
	versions := make(map[string]string, len(plugins))
	for _, p := range plugins {
		meta := p.PluginMetadata()
		versions[meta.ID] = meta.Version
	}

	var issues []error
	for _, p := range plugins {
		meta := p.PluginMetadata()
		for _, dep := range meta.Dependencies {
			actual, registered := versions[dep.ID]
			if !registered {
				if !dep.Optional {
					issues = append(issues, ErrMissingDependency{Plugin: meta.ID, Dependency: dep.ID})
				}
				continue
			}
			if dep.Version == "" {
				continue
			}
			constraint, err := ParseVersionConstraint(dep.Version)
			if err != nil {
				issues = append(issues, fmt.Errorf("plugin '%s' dependency '%s': %w", meta.ID, dep.ID, err))
				continue
			}
			if !constraint.Satisfies(actual) {
				issues = append(issues, ErrVersionConflict{
					Plugin:        meta.ID,
					Dependency:    dep.ID,
					Constraint:    constraint.String(),
					ActualVersion: actual,
				})
			}
		}
	}
	return issues
}
