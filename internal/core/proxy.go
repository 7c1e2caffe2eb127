package core

import (
	"fmt"
	"reflect"
)

// Proxy is the handle handed to code under test in place of a real
// dependency. It owns exactly one tree reference. Mutators never edit that
// tree in place; they build a replacement and re-point the proxy, so child
// proxies obtained earlier keep reading their own snapshot.
type Proxy struct {
	tree tree
}

// New builds a proxy from a nested definition. Keys at every depth are
// normalized to strings; map values become subtrees; every other value must
// be a non-nil function, or construction fails with ErrInvalidCallback.
func New(def map[string]any) (*Proxy, error) {
	t, err := normalizeTree(def, nil, true)
	if err != nil {
		return nil, err
	}

	return &Proxy{tree: t}, nil
}

// Call dispatches a single method name against the proxy's tree. The name
// is a direct key, never a dotted path.
//
// A callback key invokes the callback with args and returns its result. A
// subtree key ignores args and returns a fresh child *Proxy for the next
// call in the chain. An absent key fails with ErrMissingDefinition:
// unmapped methods are a test-authoring bug, not something to satisfy
// silently.
func (p *Proxy) Call(name string, args ...any) (any, error) {
	found, ok := p.tree[name]
	if !ok {
		return nil, &MissingDefinitionError{
			Method:  name,
			Defined: p.tree.sortedKeys(),
			Tree:    p.tree.render(),
		}
	}

	if found.subtree != nil {
		return &Proxy{tree: found.subtree}, nil
	}

	return Invoke(found.leaf, args...), nil
}

// Child returns a new proxy over the subtree at name. It is the navigation
// half of Call, for callers that know the key is not terminal. A callback
// key is an error rather than an invocation; Child never calls anything.
func (p *Proxy) Child(name string) (*Proxy, error) {
	found, ok := p.tree[name]
	if !ok {
		return nil, &MissingDefinitionError{
			Method:  name,
			Defined: p.tree.sortedKeys(),
			Tree:    p.tree.render(),
		}
	}

	if found.subtree == nil {
		return nil, fmt.Errorf("%w: %q names a callback, not a subtree", ErrPathIncomplete, name)
	}

	return &Proxy{tree: found.subtree}, nil
}

// Snapshot returns a deep, detached copy of the current definition.
// Editing the returned map has no effect on the proxy.
func (p *Proxy) Snapshot() map[string]any {
	return p.tree.toMap()
}

// String renders the current tree shape.
func (p *Proxy) String() string {
	return p.tree.render()
}

// Invoke calls a callback with args via reflection and returns its result:
// nil for no return values, the value itself for one, a []any for several.
//
// Invoke panics on programmer error (non-function callback, arity or type
// mismatch); those are bugs in the test setup, not runtime conditions the
// tree can report.
func Invoke(callback Callback, args ...any) any {
	fn := reflect.ValueOf(callback)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("stubtree: callback must be a function. received a %T instead.", callback))
	}

	fnType := fn.Type()
	panicIfWrongArity(fnType, len(args))

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		paramType := paramTypeAt(fnType, i)

		if arg == nil {
			in[i] = reflect.Zero(paramType)

			continue
		}

		argVal := reflect.ValueOf(arg)
		if !argVal.Type().AssignableTo(paramType) {
			panic(fmt.Sprintf("stubtree: wrong arg type at index %d: the callback takes %s, but %T was passed",
				i, paramType, arg))
		}

		in[i] = argVal
	}

	out := fn.Call(in)

	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0].Interface()
	default:
		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}

		return results
	}
}

// paramTypeAt returns the declared parameter type for argument index i,
// unrolling the variadic tail.
func paramTypeAt(fnType reflect.Type, i int) reflect.Type {
	last := fnType.NumIn() - 1
	if fnType.IsVariadic() && i >= last {
		return fnType.In(last).Elem()
	}

	return fnType.In(i)
}

func panicIfWrongArity(fnType reflect.Type, numArgs int) {
	numParams := fnType.NumIn()

	if fnType.IsVariadic() {
		if numArgs < numParams-1 {
			panic(fmt.Sprintf("stubtree: too few args passed. the callback (%s) takes at least %d args, but only %d were passed",
				fnType, numParams-1, numArgs))
		}

		return
	}

	if numArgs < numParams {
		panic(fmt.Sprintf("stubtree: too few args passed. the callback (%s) takes %d args, but only %d were passed",
			fnType, numParams, numArgs))
	}

	if numParams < numArgs {
		panic(fmt.Sprintf("stubtree: too many args passed. the callback (%s) only takes %d args, but %d were passed",
			fnType, numParams, numArgs))
	}
}
