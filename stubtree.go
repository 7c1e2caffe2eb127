// Package stubtree provides a configurable stand-in dependency for tests.
//
// A stub tree is a nested mapping that describes what a chain of method
// calls should do: each leaf is a callback that fires when that point in
// the chain is reached, and each intermediate key is a subtree for the next
// call. Code under test receives a *Proxy and dispatches against it with
// Call; test setup edits the tree with the mutators, all of which are
// copy-on-write.
//
//	save := func(u string) string { return "saved:" + u }
//	p, _ := stubtree.New(map[string]any{
//	    "user": map[string]any{
//	        "create": map[string]any{"save": save},
//	    },
//	})
//	result, _ := p.CallPath("user.create.save", "alice") // "saved:alice"
//
// This is the public API entry point. Implementation lives in internal/core.
package stubtree

import (
	"github.com/toejough/stubtree/internal/core"
)

// Callback is any invocable leaf value in a tree: the terminal action for
// one step of a call chain.
type Callback = core.Callback

// Path is an ordered sequence of normalized string keys identifying a
// location in a tree.
type Path = core.Path

// Proxy is the dynamically dispatched handle wrapping one tree, handed to
// code under test in place of a real dependency.
type Proxy = core.Proxy

// Wrapper is the function signature Wrap installs around an existing
// callback; it gets the call's arguments plus a handle to the original.
type Wrapper = core.Wrapper

// PathNotFoundError reports the path segment that failed to resolve.
type PathNotFoundError = core.PathNotFoundError

// PathIncompleteError reports a path that ends at a subtree where a
// callback was required.
type PathIncompleteError = core.PathIncompleteError

// InvalidCallbackError reports a supplied leaf value that cannot serve as a
// callback.
type InvalidCallbackError = core.InvalidCallbackError

// MissingDefinitionError reports a dispatched method name with no
// corresponding key.
type MissingDefinitionError = core.MissingDefinitionError

// Sentinel errors for use with errors.Is; the typed errors above unwrap to
// these.
var (
	ErrPathNotFound      = core.ErrPathNotFound
	ErrPathIncomplete    = core.ErrPathIncomplete
	ErrInvalidCallback   = core.ErrInvalidCallback
	ErrMissingDefinition = core.ErrMissingDefinition
	ErrEmptyPath         = core.ErrEmptyPath
)

// New builds a proxy from a nested definition. Keys at every depth are
// normalized to strings; map values become subtrees; every other value must
// be a non-nil function.
func New(def map[string]any) (*Proxy, error) {
	return core.New(def)
}

// ParsePath resolves a path expression (dotted string, slice of keys, or
// single key) into a Path.
func ParsePath(expr any) (Path, error) {
	return core.ParsePath(expr)
}

// Invoke calls a callback with args via reflection. Wrappers use it to call
// through to the original callback they were handed.
func Invoke(callback Callback, args ...any) any {
	return core.Invoke(callback, args...)
}
