package core

import (
	"fmt"
	"strings"
)

// Path is an ordered sequence of normalized string keys identifying a
// location in a tree. Paths are ephemeral: they are resolved from an
// expression immediately before a walk and never stored.
type Path []string

// String renders the path in its dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ParsePath resolves a path expression into a Path. Accepted forms:
//
//   - a dotted string, "a.b.c", split on "."
//   - a []string or []any of key-like values, order preserved
//   - an existing Path
//   - any other single key-like value, treated as a one-segment path
//
// An expression that resolves to zero segments fails with ErrEmptyPath;
// silently resolving to the root would make every downstream failure
// misleading.
func ParsePath(expr any) (Path, error) {
	switch pathExpr := expr.(type) {
	case Path:
		if len(pathExpr) == 0 {
			return nil, fmt.Errorf("%w: empty key sequence", ErrEmptyPath)
		}

		return pathExpr, nil
	case string:
		if pathExpr == "" {
			return nil, fmt.Errorf("%w: empty path string", ErrEmptyPath)
		}

		return Path(strings.Split(pathExpr, ".")), nil
	case []string:
		if len(pathExpr) == 0 {
			return nil, fmt.Errorf("%w: empty key sequence", ErrEmptyPath)
		}

		return Path(pathExpr), nil
	case []any:
		if len(pathExpr) == 0 {
			return nil, fmt.Errorf("%w: empty key sequence", ErrEmptyPath)
		}

		path := make(Path, len(pathExpr))
		for i, key := range pathExpr {
			path[i] = normalizeKey(key)
		}

		return path, nil
	case nil:
		return nil, fmt.Errorf("%w: nil path expression", ErrEmptyPath)
	default:
		return Path{normalizeKey(expr)}, nil
	}
}

// lookup walks the tree along path and returns the node at its end.
// Presence is decided by key existence in the mapping, never by the
// truthiness of the stored value.
func (t tree) lookup(path Path) (node, error) {
	current := t

	for i, segment := range path {
		found, ok := current[segment]
		if !ok {
			return node{}, &PathNotFoundError{
				Path:    path,
				Segment: segment,
				Tree:    t.render(),
			}
		}

		if i == len(path)-1 {
			return found, nil
		}

		if found.subtree == nil {
			// An intermediate segment is a leaf; the next segment cannot
			// exist below it.
			return node{}, &PathNotFoundError{
				Path:    path,
				Segment: path[i+1],
				Tree:    t.render(),
			}
		}

		current = found.subtree
	}

	// Unreachable for non-empty paths; ParsePath rejects empty ones.
	return node{}, fmt.Errorf("%w: zero-segment walk", ErrEmptyPath)
}

// lookupCallback is the terminal contract used by Get and the validated
// mutators: the node at the full path must be a callback leaf.
func (t tree) lookupCallback(path Path) (Callback, error) {
	found, err := t.lookup(path)
	if err != nil {
		return nil, err
	}

	if found.subtree != nil {
		return nil, &PathIncompleteError{
			Path: path,
			Tree: found.subtree.render(),
		}
	}

	return found.leaf, nil
}
