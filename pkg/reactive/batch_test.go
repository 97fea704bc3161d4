package reactive

import "testing"

func TestBatchSingleNotification(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	runs := 0
	NewEffect(func() Cleanup {
		_ = a.Get()
		_ = b.Get()
		runs++
		return nil
	})

	Batch(func() {
		a.Set(1)
		b.Set(2)
	})

	// Initial run plus one batched re-run, not one per write.
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestBatchNested(t *testing.T) {
	a := NewSignal(0)

	runs := 0
	NewEffect(func() Cleanup {
		_ = a.Get()
		runs++
		return nil
	})

	Batch(func() {
		a.Set(1)
		Batch(func() {
			a.Set(2)
		})
		// Inner batch completion must not flush while outer is open.
		if runs != 1 {
			t.Errorf("notification fired before outermost batch ended, runs=%d", runs)
		}
	})

	if runs != 2 {
		t.Errorf("expected 2 runs after outer batch, got %d", runs)
	}
}

func TestBatchEmpty(t *testing.T) {
	// A batch with no writes must not panic or notify anything.
	Batch(func() {})
}

func TestUntracked(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	runs := 0
	NewEffect(func() Cleanup {
		_ = a.Get()
		Untracked(func() {
			_ = b.Get()
		})
		runs++
		return nil
	})

	b.Set(1)
	if runs != 1 {
		t.Errorf("untracked read should not subscribe, got %d runs", runs)
	}

	a.Set(1)
	if runs != 2 {
		t.Errorf("tracked read should subscribe, got %d runs", runs)
	}
}
