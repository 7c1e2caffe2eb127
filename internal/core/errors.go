package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure conditions the tree can report.
// Typed errors below unwrap to these, so callers can branch with errors.Is
// without caring about the diagnostic payload.
var (
	// ErrPathNotFound means a key-path segment does not exist in the tree.
	ErrPathNotFound = errors.New("path not found")

	// ErrPathIncomplete means the full path resolved to a subtree where a
	// callback was required. The remedy is different from ErrPathNotFound:
	// use SetAt to replace the subtree, rather than treating it as absent.
	ErrPathIncomplete = errors.New("path incomplete")

	// ErrInvalidCallback means a supplied leaf value is nil, a nil function,
	// or a mapping (mappings are reserved for subtrees).
	ErrInvalidCallback = errors.New("invalid callback")

	// ErrMissingDefinition means a dispatched method name has no key at all
	// at the top level of the proxy's tree.
	ErrMissingDefinition = errors.New("missing definition")

	// ErrEmptyPath means a path expression resolved to zero segments.
	ErrEmptyPath = errors.New("empty path")
)

// PathNotFoundError reports the first path segment that could not be
// resolved, along with a rendering of the tree that was searched.
type PathNotFoundError struct {
	Path    Path   // the full path that was requested
	Segment string // the segment that failed to resolve
	Tree    string // rendered snapshot of the searched tree
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: no key %q while resolving %q in tree:\n%s",
		e.Segment, e.Path, e.Tree)
}

func (e *PathNotFoundError) Unwrap() error { return ErrPathNotFound }

// PathIncompleteError reports a path that resolved to a subtree when a
// callback was required.
type PathIncompleteError struct {
	Path Path
	Tree string // rendered snapshot of the subtree found at Path
}

func (e *PathIncompleteError) Error() string {
	return fmt.Sprintf("path incomplete: %q names a subtree, not a callback; "+
		"the chain continues below it:\n%s", e.Path, e.Tree)
}

func (e *PathIncompleteError) Unwrap() error { return ErrPathIncomplete }

// InvalidCallbackError reports a leaf value that cannot serve as a callback.
type InvalidCallbackError struct {
	Path   Path // where the value was supplied; may be nil for bare values
	Value  any
	Reason string
}

func (e *InvalidCallbackError) Error() string {
	at := ""
	if len(e.Path) > 0 {
		at = fmt.Sprintf(" at %q", e.Path)
	}

	return fmt.Sprintf("invalid callback%s: %s (got %T)", at, e.Reason, e.Value)
}

func (e *InvalidCallbackError) Unwrap() error { return ErrInvalidCallback }

// MissingDefinitionError reports a dispatched method name with no
// corresponding key. Unmapped methods are never silently satisfied; every
// call in the expected chain has to be defined.
type MissingDefinitionError struct {
	Method  string
	Defined []string // keys that are defined at this level, sorted
	Tree    string   // rendered snapshot of the tree dispatched against
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf("missing definition: no callback or subtree named %q; "+
		"defined here: [%s]\n%s", e.Method, strings.Join(e.Defined, ", "), e.Tree)
}

func (e *MissingDefinitionError) Unwrap() error { return ErrMissingDefinition }
