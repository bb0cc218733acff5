// Package flatten converts nested JSON values into flat dot-path maps.
package flatten

import (
	"sort"
	"strconv"
)

// Flatten walks an arbitrary decoded JSON value and returns a map of
// dot-joined paths to scalar leaves. Array indices appear as stringified
// integers in the path. Scalar input comes back under the empty path.
func Flatten(v any) map[string]any {
	out := make(map[string]any)
	walk("", v, out)
	return out
}

func walk(prefix string, v any, out map[string]any) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			walk(join(prefix, k), child, out)
		}
	case []any:
		for i, child := range val {
			walk(join(prefix, strconv.Itoa(i)), child, out)
		}
	default:
		out[prefix] = val
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Paths returns the flattened paths in sorted order, for stable output.
func Paths(flat map[string]any) []string {
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
