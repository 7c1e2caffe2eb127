package core

import (
	"fmt"
	"maps"
)

// The mutators below are each a pure function from (old tree, path, payload)
// to a new tree; the only side effect is re-pointing the proxy's tree
// reference once the new tree is fully built. A failed mutation leaves the
// proxy exactly as it was: there are no partial writes.
//
// All mutators return the proxy so test setup can chain calls.

// Get returns the callback at path. The path must exist (ErrPathNotFound)
// and must terminate at a leaf (ErrPathIncomplete).
func (p *Proxy) Get(pathExpr any) (Callback, error) {
	path, err := ParsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	return p.tree.lookupCallback(path)
}

// ReplaceAt swaps the callback at an existing path for a new one. Like
// mkdir without -p: it never creates intermediate subtrees, and fails under
// the same conditions as Get when the path is absent or terminates at a
// subtree. The replacement itself must be a valid callback.
func (p *Proxy) ReplaceAt(pathExpr any, callback Callback) (*Proxy, error) {
	path, err := ParsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	if _, err := p.tree.lookupCallback(path); err != nil {
		return nil, err
	}

	if err := validateCallback(callback, path); err != nil {
		return nil, err
	}

	p.tree = p.tree.setAt(path, callback)

	return p, nil
}

// SetAt installs a callback at path, creating any missing intermediate
// subtrees, like mkdir -p. One sharp edge: an intermediate segment that
// currently holds a callback is overwritten by a fresh empty subtree,
// so SetAt can destructively convert a leaf into a branch. The terminal
// key's prior value, leaf or subtree, is overwritten unconditionally.
func (p *Proxy) SetAt(pathExpr any, callback Callback) (*Proxy, error) {
	path, err := ParsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	if err := validateCallback(callback, path); err != nil {
		return nil, err
	}

	p.tree = p.tree.setAt(path, callback)

	return p, nil
}

// Merge deep-merges a partial definition into the tree. Where both sides
// hold subtrees at a key, the merge recurses; everywhere else the incoming
// value wins outright, whole branches included.
//
// This is deliberately the least-safe mutator: no path validation, no leaf
// type checks beyond key normalization. It can silently create or destroy
// arbitrary branches. Prefer ReplaceAt or SetAt unless you need exactly
// this power.
func (p *Proxy) Merge(partial map[string]any) (*Proxy, error) {
	incoming, err := normalizeTree(partial, nil, false)
	if err != nil {
		return nil, err
	}

	p.tree = p.tree.merge(incoming)

	return p, nil
}

// Observe prepends a side-effecting observer to the callback at path. The
// installed callback invokes observer with the call's arguments, discards
// its result, then invokes the original callback with the same arguments
// and returns the original's result.
//
// Observers nest: the most recently registered observer fires first, then
// each earlier one in reverse registration order, then the original
// callback last.
//
// The path must already hold a callback, under the same rules as Get.
// A nil observer is a programmer error and panics.
func (p *Proxy) Observe(pathExpr any, observer Callback) (*Proxy, error) {
	if observer == nil {
		panic("stubtree: observer must not be nil")
	}

	path, err := ParsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	original, err := p.tree.lookupCallback(path)
	if err != nil {
		return nil, err
	}

	observed := func(args ...any) any {
		Invoke(observer, args...)

		return Invoke(original, args...)
	}

	p.tree = p.tree.setAt(path, observed)

	return p, nil
}

// Wrapper is the signature Wrap installs around an existing callback. It
// receives the call's arguments plus a handle to the callback it replaced,
// and decides whether, when, and with what arguments to invoke it,
// including not at all. Invoke the handle with core.Invoke.
type Wrapper func(original Callback, args ...any) any

// Wrap replaces the callback at path with wrapper, handing it full control
// over the original. Unlike Observe, Wrap never calls through on its own.
//
// The path must already hold a callback, under the same rules as Get.
// A nil wrapper is a programmer error and panics.
func (p *Proxy) Wrap(pathExpr any, wrapper Wrapper) (*Proxy, error) {
	if wrapper == nil {
		panic("stubtree: wrapper must not be nil")
	}

	path, err := ParsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	original, err := p.tree.lookupCallback(path)
	if err != nil {
		return nil, err
	}

	wrapped := func(args ...any) any {
		return wrapper(original, args...)
	}

	p.tree = p.tree.setAt(path, wrapped)

	return p, nil
}

// CallPath resolves a dotted path with dispatch semantics: every segment
// but the last must navigate into a subtree, and the final segment is
// dispatched with args exactly as a single Call would be. It exists because
// Go callers cannot write proxy.a.b.c(x) directly.
func (p *Proxy) CallPath(pathExpr any, args ...any) (any, error) {
	path, err := ParsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	current := p

	for _, segment := range path[:len(path)-1] {
		current, err = current.Child(segment)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", path, err)
		}
	}

	return current.Call(path[len(path)-1], args...)
}

// setAt rebuilds the spine of the tree along path, sharing every untouched
// sibling branch with the original, and installs callback at the end.
// Callers are responsible for any validation; setAt itself is the
// unconditional mkdir -p write.
func (t tree) setAt(path Path, callback Callback) tree {
	out := maps.Clone(t)
	if out == nil {
		out = make(tree, 1)
	}

	key := path[0]

	if len(path) == 1 {
		out[key] = node{leaf: callback}

		return out
	}

	child := out[key].subtree
	if child == nil {
		// absent, or a leaf being converted into a branch
		child = make(tree)
	}

	out[key] = node{subtree: child.setAt(path[1:], callback)}

	return out
}

// merge builds the deep merge of t and incoming. Both inputs are left
// untouched; shared structure is copied only where the merge descends.
func (t tree) merge(incoming tree) tree {
	out := maps.Clone(t)
	if out == nil {
		out = make(tree, len(incoming))
	}

	for key, in := range incoming {
		existing, ok := out[key]
		if ok && existing.subtree != nil && in.subtree != nil {
			out[key] = node{subtree: existing.subtree.merge(in.subtree)}

			continue
		}

		out[key] = in
	}

	return out
}
