package spy

import (
	"errors"
	"fmt"
	"reflect"
)

// errNotARecorder is a sentinel error for actual values that aren't
// recorders.
var errNotARecorder = errors.New("not a spy recorder")

// Matcher is the interface the matchers below implement. It is a superset
// of gomega's GomegaMatcher, so these work directly inside Expect(...).To.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// HaveBeenCalled matches a *Recorder that recorded at least one invocation.
func HaveBeenCalled() Matcher {
	return calledMatcher{}
}

// HaveBeenCalledTimes matches a *Recorder with exactly n recorded
// invocations.
func HaveBeenCalledTimes(n int) Matcher {
	return timesMatcher{expected: n}
}

// HaveBeenCalledWith matches a *Recorder where at least one recorded
// invocation has exactly the given arguments, compared with
// reflect.DeepEqual.
func HaveBeenCalledWith(args ...any) Matcher {
	return argsMatcher{expected: args}
}

func recorderFor(actual any) (*Recorder, error) {
	rec, ok := actual.(*Recorder)
	if !ok {
		return nil, fmt.Errorf("%w: expected *spy.Recorder, got %T", errNotARecorder, actual)
	}

	return rec, nil
}

type calledMatcher struct{}

func (calledMatcher) Match(actual any) (bool, error) {
	rec, err := recorderFor(actual)
	if err != nil {
		return false, err
	}

	return rec.WasCalled(), nil
}

func (calledMatcher) FailureMessage(any) string {
	return "expected spy to have been called, but it never was"
}

func (calledMatcher) NegatedFailureMessage(actual any) string {
	rec, _ := recorderFor(actual)

	return fmt.Sprintf("expected spy not to have been called, but it was called %d time(s)", rec.CallCount())
}

type timesMatcher struct {
	expected int
}

func (m timesMatcher) Match(actual any) (bool, error) {
	rec, err := recorderFor(actual)
	if err != nil {
		return false, err
	}

	return rec.CallCount() == m.expected, nil
}

func (m timesMatcher) FailureMessage(actual any) string {
	rec, _ := recorderFor(actual)

	return fmt.Sprintf("expected spy to have been called %d time(s), but it was called %d time(s)",
		m.expected, rec.CallCount())
}

func (m timesMatcher) NegatedFailureMessage(any) string {
	return fmt.Sprintf("expected spy not to have been called %d time(s), but it was", m.expected)
}

type argsMatcher struct {
	expected []any
}

func (m argsMatcher) Match(actual any) (bool, error) {
	rec, err := recorderFor(actual)
	if err != nil {
		return false, err
	}

	for _, call := range rec.Calls() {
		if argsEqual(call.Args, m.expected) {
			return true, nil
		}
	}

	return false, nil
}

// argsEqual compares argument lists elementwise, so a zero-arg call matches
// HaveBeenCalledWith() regardless of nil-vs-empty slice representation.
func argsEqual(actual, expected []any) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i := range expected {
		if !reflect.DeepEqual(actual[i], expected[i]) {
			return false
		}
	}

	return true
}

func (m argsMatcher) FailureMessage(actual any) string {
	rec, _ := recorderFor(actual)

	return fmt.Sprintf("expected spy to have been called with %#v, but recorded calls were %#v",
		m.expected, rec.Calls())
}

func (m argsMatcher) NegatedFailureMessage(any) string {
	return fmt.Sprintf("expected spy not to have been called with %#v, but it was", m.expected)
}
