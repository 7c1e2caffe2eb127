package core_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/toejough/stubtree"
)

func TestReplaceAt_SwapsAnExistingCallback(t *testing.T) {
	t.Parallel()

	oldCalled, newCalled := false, false
	oldCB := func(...any) any { oldCalled = true; return nil }
	newCB := func(...any) any { newCalled = true; return "new" }

	proxy, err := stubtree.New(map[string]any{
		"user": map[string]any{"save": oldCB},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.ReplaceAt("user.save", newCB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := proxy.CallPath("user.save")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != "new" || !newCalled || oldCalled {
		t.Errorf("expected only the new callback to run; result=%v new=%v old=%v",
			result, newCalled, oldCalled)
	}
}

func TestReplaceAt_NeverCreatesIntermediates(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{
		"user": map[string]any{"save": noop},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := shape(proxy.Snapshot())

	t.Run("absent path", func(t *testing.T) {
		_, err := proxy.ReplaceAt("user.delete", noop)
		if !errors.Is(err, stubtree.ErrPathNotFound) {
			t.Fatalf("expected ErrPathNotFound, got %v", err)
		}
	})

	t.Run("path ending at a subtree", func(t *testing.T) {
		_, err := proxy.ReplaceAt("user", noop)
		if !errors.Is(err, stubtree.ErrPathIncomplete) {
			t.Fatalf("expected ErrPathIncomplete, got %v", err)
		}
	})

	t.Run("invalid replacement", func(t *testing.T) {
		_, err := proxy.ReplaceAt("user.save", nil)
		if !errors.Is(err, stubtree.ErrInvalidCallback) {
			t.Fatalf("expected ErrInvalidCallback, got %v", err)
		}
	})

	// No partial writes: every failure above left the tree untouched.
	if diff := cmp.Diff(before, shape(proxy.Snapshot())); diff != "" {
		t.Errorf("failed mutations changed the tree (-before +after):\n%s", diff)
	}
}

func TestSetAt_CreatesMissingIntermediates(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.SetAt("user.create.save", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Get("user.create.save"); err != nil {
		t.Errorf("expected the callback at the freshly created path: %v", err)
	}
}

func TestSetAt_ConvertsALeafIntoABranch(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{
		"user": map[string]any{"save": noop},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "save" currently holds a callback; setting below it blows it away.
	if _, err := proxy.SetAt("user.save.force", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Get("user.save.force"); err != nil {
		t.Errorf("expected callback below the converted leaf: %v", err)
	}

	if _, err := proxy.Get("user.save"); !errors.Is(err, stubtree.ErrPathIncomplete) {
		t.Errorf("expected the old leaf to now be a subtree, got %v", err)
	}
}

func TestSetAt_RejectsInvalidCallbacks(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, bad := range []any{nil, 42, map[string]any{}} {
		if _, err := proxy.SetAt("a.b", bad); !errors.Is(err, stubtree.ErrInvalidCallback) {
			t.Errorf("expected ErrInvalidCallback for %#v, got %v", bad, err)
		}
	}
}

func TestMerge_RecursesWhereBothSidesAreSubtrees(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{
		"a": map[string]any{"b": noop},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Merge(map[string]any{"a": map[string]any{"c": noop}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := shape(proxy.Snapshot())
	want := map[string]any{"a": map[string]any{"b": "leaf", "c": "leaf"}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge did not combine the branches (-want +got):\n%s", diff)
	}
}

func TestMerge_IncomingWinsWhenTypesDiffer(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{
		"a": map[string]any{"b": noop},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Merge is the unsafe mutator: a non-subtree incoming value replaces
	// the whole branch, and leaf values are not type-checked.
	if _, err := proxy.Merge(map[string]any{"a": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := proxy.Snapshot()
	if snap["a"] != 2 {
		t.Errorf("expected the whole branch replaced by 2, got %#v", snap["a"])
	}

	if _, err := proxy.Get("a.b"); !errors.Is(err, stubtree.ErrPathNotFound) {
		t.Errorf("expected the old branch to be gone, got %v", err)
	}
}

func TestMerge_NormalizesIncomingKeys(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Merge(map[string]any{"a": map[int]any{1: noop}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Get("a.1"); err != nil {
		t.Errorf("expected merged numeric key to be normalized: %v", err)
	}
}

func TestObserve_RunsBeforeTheOriginalWithTheSameArgs(t *testing.T) {
	t.Parallel()

	var order []string

	var observedArgs []any

	original := func(args ...any) any {
		order = append(order, "original")

		return "result"
	}
	observer := func(args ...any) any {
		order = append(order, "observer")
		observedArgs = args

		// observer results are discarded
		return "ignored"
	}

	proxy, err := stubtree.New(map[string]any{"save": original})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Observe("save", observer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := proxy.Call("save", "alice", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != "result" {
		t.Errorf("expected the original's result, got %v", result)
	}

	if diff := cmp.Diff([]string{"observer", "original"}, order); diff != "" {
		t.Errorf("wrong execution order (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]any{"alice", 7}, observedArgs); diff != "" {
		t.Errorf("observer saw different args (-want +got):\n%s", diff)
	}
}

func TestObserve_NestsMostRecentFirst(t *testing.T) {
	t.Parallel()

	var order []string

	proxy, err := stubtree.New(map[string]any{
		"save": func(...any) any { order = append(order, "original"); return nil },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Observe("save", func(...any) any { order = append(order, "O1"); return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Observe("save", func(...any) any { order = append(order, "O2"); return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Call("save"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"O2", "O1", "original"}, order); diff != "" {
		t.Errorf("wrong observer nesting order (-want +got):\n%s", diff)
	}
}

func TestObserve_RequiresAnExistingCallback(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{
		"user": map[string]any{"save": noop},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := proxy.Observe("user.delete", noop); !errors.Is(err, stubtree.ErrPathNotFound) {
		t.Errorf("expected ErrPathNotFound, got %v", err)
	}

	if _, err := proxy.Observe("user", noop); !errors.Is(err, stubtree.ErrPathIncomplete) {
		t.Errorf("expected ErrPathIncomplete, got %v", err)
	}
}

func TestWrap_ControlsTheOriginal(t *testing.T) {
	t.Parallel()

	originalCalls := 0
	original := func(args ...any) any {
		originalCalls++

		name, _ := args[0].(string)

		return "saved:" + name
	}

	proxy, err := stubtree.New(map[string]any{"save": original})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("transforming args and result", func(t *testing.T) {
		wrapper := func(orig stubtree.Callback, args ...any) any {
			name, _ := args[0].(string)
			result := stubtree.Invoke(orig, "sir "+name)

			str, _ := result.(string)

			return str + "!"
		}

		if _, err := proxy.Wrap("save", wrapper); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := proxy.Call("save", "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result != "saved:sir alice!" {
			t.Errorf("expected transformed result, got %v", result)
		}

		if originalCalls != 1 {
			t.Errorf("expected exactly one original call, got %d", originalCalls)
		}
	})

	t.Run("suppressing the call entirely", func(t *testing.T) {
		suppress := func(stubtree.Callback, ...any) any { return "suppressed" }

		if _, err := proxy.Wrap("save", suppress); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := proxy.Call("save", "bob")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result != "suppressed" {
			t.Errorf("expected the wrapper's own result, got %v", result)
		}

		if originalCalls != 1 {
			t.Errorf("expected the original to be suppressed, but calls=%d", originalCalls)
		}
	})
}

func TestMutators_ChainOnTheSameProxy(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chained, err := proxy.SetAt("a.b", noop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if chained != proxy {
		t.Fatal("mutators must return the same re-pointed proxy for chaining")
	}

	if _, err := chained.ReplaceAt("a.b", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMutators_OldChildProxiesKeepTheirSnapshot(t *testing.T) {
	t.Parallel()

	proxy, err := stubtree.New(map[string]any{
		"user": map[string]any{"save": noop},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child, err := proxy.Child("user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Writes are copy-on-write whole-tree replacements; the earlier child
	// still reads its own snapshot.
	if _, err := proxy.SetAt("user.delete", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := child.Get("delete"); !errors.Is(err, stubtree.ErrPathNotFound) {
		t.Errorf("expected the old child snapshot to be unaffected, got %v", err)
	}

	if _, err := proxy.Get("user.delete"); err != nil {
		t.Errorf("expected the write to be visible through the parent: %v", err)
	}
}
