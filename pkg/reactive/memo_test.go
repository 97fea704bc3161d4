package reactive

import "testing"

func TestMemoBasic(t *testing.T) {
	count := NewSignal(2)
	double := NewMemo(func() int { return count.Get() * 2 })

	if double.Get() != 4 {
		t.Errorf("expected 4, got %d", double.Get())
	}

	count.Set(5)
	if double.Get() != 10 {
		t.Errorf("expected 10 after dependency change, got %d", double.Get())
	}
}

func TestMemoLazy(t *testing.T) {
	count := NewSignal(1)

	computes := 0
	memo := NewMemo(func() int {
		computes++
		return count.Get()
	})

	if computes != 0 {
		t.Fatalf("memo should not compute before first read, got %d", computes)
	}

	_ = memo.Get()
	_ = memo.Get()
	if computes != 1 {
		t.Errorf("repeated reads without changes should compute once, got %d", computes)
	}

	// Multiple writes before the next read collapse into one recompute.
	count.Set(2)
	count.Set(3)
	_ = memo.Get()
	if computes != 2 {
		t.Errorf("expected 2 computes, got %d", computes)
	}
}

func TestMemoChain(t *testing.T) {
	count := NewSignal(1)
	double := NewMemo(func() int { return count.Get() * 2 })
	quad := NewMemo(func() int { return double.Get() * 2 })

	if quad.Get() != 4 {
		t.Errorf("expected 4, got %d", quad.Get())
	}

	count.Set(3)
	if quad.Get() != 12 {
		t.Errorf("expected 12 after change through chain, got %d", quad.Get())
	}
}

func TestMemoDynamicDependencies(t *testing.T) {
	useFirst := NewSignal(true)
	first := NewSignal("a")
	second := NewSignal("b")

	computes := 0
	memo := NewMemo(func() string {
		computes++
		if useFirst.Get() {
			return first.Get()
		}
		return second.Get()
	})

	if memo.Get() != "a" {
		t.Fatalf("expected a, got %s", memo.Get())
	}

	// While the first branch is active, second is not a dependency.
	second.Set("bb")
	_ = memo.Get()
	if computes != 1 {
		t.Errorf("untracked branch should not invalidate, got %d computes", computes)
	}

	useFirst.Set(false)
	if memo.Get() != "bb" {
		t.Errorf("expected bb after branch switch, got %s", memo.Get())
	}
}

func TestMemoPeek(t *testing.T) {
	count := NewSignal(7)
	memo := NewMemo(func() int { return count.Get() })

	if memo.Peek() != 7 {
		t.Errorf("expected 7, got %d", memo.Peek())
	}

	count.Set(8)
	if memo.Peek() != 8 {
		t.Errorf("Peek should recompute stale value, got %d", memo.Peek())
	}
}
