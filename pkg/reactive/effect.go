package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect. The body runs when the effect is
// created and re-runs synchronously whenever a signal or memo it read
// changes. The body may return a Cleanup that runs before the next run
// and on Dispose.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	// runMu serializes runs so a dependency change on another goroutine
	// cannot interleave with an in-progress run.
	runMu sync.Mutex

	disposed atomic.Bool
}

// NewEffect creates the effect and runs it immediately.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	e.run()
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) run() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.disposed.Load() {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	old := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(old)
}

// addSource implements sourceTracker.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose runs the pending cleanup and unsubscribes from all sources.
// Safe to call more than once.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

var _ sourceTracker = (*Effect)(nil)
