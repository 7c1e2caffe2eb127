// Package properties provides generators for the property-based UAT: random
// tree definitions whose leaves identify themselves, so any path can be
// checked for roundtripping.
package properties

import (
	"pgregory.net/rapid"

	"github.com/toejough/stubtree/spy"
)

const (
	maxDepth    = 3
	maxBranches = 3
)

// RandomDefinition draws a nested definition whose every leaf callback
// returns its own dotted path when invoked, plus the list of those paths.
func RandomDefinition(rt *rapid.T) (map[string]any, []string) {
	def := randomSubtree(rt, "", maxDepth)

	return def, leafPaths(def, "")
}

func randomSubtree(rt *rapid.T, prefix string, depth int) map[string]any {
	numKeys := rapid.IntRange(0, maxBranches).Draw(rt, "numKeys")
	out := make(map[string]any, numKeys)

	for i := 0; i < numKeys; i++ {
		key := rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "key")

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if depth > 1 && rapid.Bool().Draw(rt, "branch") {
			out[key] = randomSubtree(rt, path, depth-1)
		} else {
			out[key] = spy.Returning(path)
		}
	}

	return out
}

func leafPaths(def map[string]any, prefix string) []string {
	var paths []string

	for key, value := range def {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if sub, ok := value.(map[string]any); ok {
			paths = append(paths, leafPaths(sub, path)...)
		} else {
			paths = append(paths, path)
		}
	}

	return paths
}
