package core

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// render produces a human-readable snapshot of the tree shape for error
// messages. Keys are sorted so the rendering is stable.
func (t tree) render() string {
	root := treeprint.New()
	t.addBranches(root)

	return strings.TrimRight(root.String(), "\n")
}

func (t tree) addBranches(branch treeprint.Tree) {
	for _, key := range t.sortedKeys() {
		n := t[key]
		if n.subtree != nil {
			n.subtree.addBranches(branch.AddBranch(key))
		} else {
			branch.AddNode(fmt.Sprintf("%s: %s", key, leafLabel(n.leaf)))
		}
	}
}

func (t tree) sortedKeys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// leafLabel describes a leaf value for diagnostics. Named functions are
// labeled with their name; everything else with its type.
func leafLabel(leaf Callback) string {
	if leaf == nil {
		return "<nil>"
	}

	val := reflect.ValueOf(leaf)
	if val.Kind() != reflect.Func {
		return fmt.Sprintf("%T", leaf)
	}

	name := runtime.FuncForPC(uintptr(val.UnsafePointer())).Name()
	// method values get this suffix appended; it carries no information
	name = strings.TrimSuffix(name, "-fm")

	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return fmt.Sprintf("%s %s", name, val.Type())
}
