package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	NewEffect(func() Cleanup {
		runs++
		return nil
	})
	if runs != 1 {
		t.Errorf("expected immediate run, got %d", runs)
	}
}

func TestEffectRerunsOnChange(t *testing.T) {
	count := NewSignal(0)

	var seen []int
	NewEffect(func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})

	count.Set(1)
	count.Set(2)

	want := []int{0, 1, 2}
	if len(seen) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(seen))
	}
	for i, v := range want {
		if seen[i] != v {
			t.Errorf("run %d: expected %d, got %d", i, v, seen[i])
		}
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	count := NewSignal(0)

	var events []string
	NewEffect(func() Cleanup {
		_ = count.Get()
		events = append(events, "run")
		return func() { events = append(events, "cleanup") }
	})

	count.Set(1)

	want := []string{"run", "cleanup", "run"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("expected %v, got %v", want, events)
			break
		}
	}
}

func TestEffectDispose(t *testing.T) {
	count := NewSignal(0)

	runs := 0
	cleanups := 0
	e := NewEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return func() { cleanups++ }
	})

	e.Dispose()
	if cleanups != 1 {
		t.Errorf("expected cleanup on dispose, got %d", cleanups)
	}

	count.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect should not re-run, got %d runs", runs)
	}

	// Dispose is idempotent.
	e.Dispose()
	if cleanups != 1 {
		t.Errorf("double dispose should not re-run cleanup, got %d", cleanups)
	}
}

func TestEffectReadsMemo(t *testing.T) {
	count := NewSignal(1)
	double := NewMemo(func() int { return count.Get() * 2 })

	var seen []int
	NewEffect(func() Cleanup {
		seen = append(seen, double.Get())
		return nil
	})

	count.Set(5)

	if len(seen) != 2 || seen[0] != 2 || seen[1] != 10 {
		t.Errorf("expected [2 10], got %v", seen)
	}
}
