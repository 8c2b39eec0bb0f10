// Package merge combines design-token trees contributed by several plugins.
package merge

// undefined marks a key whose value should leave the accumulated tree untouched.
type undefined struct{}

// Undefined can be stored under a key to make that key a no-op during a merge.
// A nil value, by contrast, is a real override.
var Undefined any = undefined{}

// DeepMerge folds sources left to right into a new tree.
//
// Nested map[string]any values are merged key by key. Every other value,
// including slices, structs, time values and functions, is atomic: the later
// source replaces the earlier one outright. Undefined values are skipped and
// nil replaces anything. No input is modified.
func DeepMerge(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, source := range sources {
		if source == nil {
			continue
		}
		result = mergeInto(result, source)
	}
	return result
}

func mergeInto(acc, incoming map[string]any) map[string]any {
	out := make(map[string]any, len(acc)+len(incoming))
	for key, value := range acc {
		out[key] = value
	}

	for key, value := range incoming {
		if value == Undefined {
			continue
		}

		incomingTree, incomingIsTree := value.(map[string]any)
		currentTree, currentIsTree := out[key].(map[string]any)
		switch {
		case incomingIsTree && currentIsTree:
			out[key] = mergeInto(currentTree, incomingTree)
		case incomingIsTree:
			out[key] = Clone(incomingTree)
		default:
			out[key] = cloneValue(value)
		}
	}
	return out
}

// Clone returns a deep copy of tree, dropping Undefined entries.
func Clone(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}
	out := make(map[string]any, len(tree))
	for key, value := range tree {
		if value == Undefined {
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return Clone(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
