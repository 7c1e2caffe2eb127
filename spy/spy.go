// Package spy provides recording callbacks and matchers for stub trees.
// Leaf callbacks built here record every invocation so the host test
// framework has something concrete to assert on. The matchers implement
// gomega's GomegaMatcher by duck typing, so they drop straight into
// Expect(...).To:
//
//	save, rec := spy.New()
//	...
//	Expect(rec).To(spy.HaveBeenCalledWith("alice"))
//
// Import qualified rather than dotted; PanicWith would collide with the
// gomega matcher of the same name.
package spy

import (
	"github.com/toejough/stubtree"
)

// Call is one recorded invocation.
type Call struct {
	Args []any
}

// Recorder accumulates the calls a spy callback receives.
//
// Recorders are not synchronized; like the proxy itself, they assume the
// single-threaded call/return model of test setup and dispatch.
type Recorder struct {
	calls []Call
}

// CallCount returns how many times the spy was invoked.
func (r *Recorder) CallCount() int {
	return len(r.calls)
}

// Calls returns a copy of every recorded invocation, in order.
func (r *Recorder) Calls() []Call {
	out := make([]Call, len(r.calls))
	copy(out, r.calls)

	return out
}

// ArgsForCall returns the arguments of the i'th invocation.
// Panics if i is out of range, like a slice index would.
func (r *Recorder) ArgsForCall(i int) []any {
	return r.calls[i].Args
}

// WasCalled reports whether the spy was invoked at all.
func (r *Recorder) WasCalled() bool {
	return len(r.calls) > 0
}

func (r *Recorder) record(args []any) {
	r.calls = append(r.calls, Call{Args: args})
}

// New returns a recording callback and the Recorder it feeds. The callback
// returns nil; combine with Returning via Observe when a canned result is
// also needed.
func New() (stubtree.Callback, *Recorder) {
	rec := &Recorder{}

	callback := func(args ...any) any {
		rec.record(args)

		return nil
	}

	return callback, rec
}

// Returning builds a callback that ignores its arguments and returns the
// given values: nil for none, the value itself for one, a []any for
// several. Matches what Proxy.Call reports for multi-return callbacks.
func Returning(values ...any) stubtree.Callback {
	return func(...any) any {
		switch len(values) {
		case 0:
			return nil
		case 1:
			return values[0]
		default:
			return values
		}
	}
}

// PanicWith builds a callback that panics with the given value, for
// simulating a dependency blowing up mid-chain.
func PanicWith(value any) stubtree.Callback {
	return func(...any) any {
		panic(value)
	}
}
