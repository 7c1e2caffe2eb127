// Package core implements the call tree behind a stub proxy: a normalized,
// immutable mapping from method name to either a callback or a nested
// subtree, plus the path resolution and copy-on-write mutation that the
// public stubtree package exposes.
package core

import (
	"fmt"
	"reflect"
)

// Callback is any invocable leaf value in the tree. It must be a function;
// arity and parameter types are up to the test author, since invocation
// goes through reflection.
type Callback = any

// node is the tagged union stored at each key: a subtree when subtree is
// non-nil, a callback leaf otherwise. Tagging at construction time removes
// any later "is this a mapping?" inspection during dispatch.
type node struct {
	leaf    Callback
	subtree tree
}

// tree is the backing store. Instances are never mutated after
// construction; every write builds a replacement that shares untouched
// branches with the original.
type tree map[string]node

// normalizeKey converts a key-like value to its canonical string form.
func normalizeKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprintf("%v", k)
	}
}

// normalizeTree converts a caller-supplied nested mapping into a tree.
// Any map value (of any key type) becomes a subtree; everything else is a
// leaf. In strict mode every leaf must pass validateCallback; permissive
// mode (used by Merge) accepts leaves as-is.
func normalizeTree(def any, at Path, strict bool) (tree, error) {
	val := reflect.ValueOf(def)
	if !val.IsValid() || val.Kind() != reflect.Map {
		return nil, &InvalidCallbackError{
			Path:   at,
			Value:  def,
			Reason: "definition must be a map",
		}
	}

	out := make(tree, val.Len())

	iter := val.MapRange()
	for iter.Next() {
		key := normalizeKey(iter.Key().Interface())
		childPath := append(append(Path{}, at...), key)

		value := iter.Value().Interface()
		if isMapping(value) {
			sub, err := normalizeTree(value, childPath, strict)
			if err != nil {
				return nil, err
			}

			out[key] = node{subtree: sub}

			continue
		}

		if strict {
			if err := validateCallback(value, childPath); err != nil {
				return nil, err
			}
		}

		out[key] = node{leaf: value}
	}

	return out, nil
}

// isMapping reports whether a value is a structured mapping, which the tree
// always interprets as a subtree rather than a leaf.
func isMapping(value any) bool {
	if value == nil {
		return false
	}

	return reflect.ValueOf(value).Kind() == reflect.Map
}

// validateCallback checks that a value can serve as a leaf. Presence in the
// tree is tracked by key existence, never by truthiness, so a nil function
// is rejected here rather than being conflated with "not defined".
func validateCallback(value any, at Path) error {
	if value == nil {
		return &InvalidCallbackError{Path: at, Value: value, Reason: "callback is nil"}
	}

	val := reflect.ValueOf(value)

	switch val.Kind() {
	case reflect.Map:
		return &InvalidCallbackError{
			Path:   at,
			Value:  value,
			Reason: "mappings are reserved for subtrees",
		}
	case reflect.Func:
		if val.IsNil() {
			return &InvalidCallbackError{Path: at, Value: value, Reason: "callback is a nil function"}
		}

		return nil
	default:
		return &InvalidCallbackError{
			Path:   at,
			Value:  value,
			Reason: "callback must be a function",
		}
	}
}

// toMap produces a deep, detached plain-map copy of the tree. Leaves are
// shared (they are opaque values), structure is not.
func (t tree) toMap() map[string]any {
	out := make(map[string]any, len(t))

	for key, n := range t {
		if n.subtree != nil {
			out[key] = n.subtree.toMap()
		} else {
			out[key] = n.leaf
		}
	}

	return out
}
