package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
// Memos implement it to invalidate their cache; effects implement it to
// schedule a re-run.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier, used to deduplicate notifications
	// inside a batch.
	ID() uint64
}

// Cleanup is returned by an effect body to release resources. It runs
// before the effect re-runs and when the effect is disposed.
type Cleanup func()

// idCounter is the source of unique IDs for all reactive primitives.
var idCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
