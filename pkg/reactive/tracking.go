package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive bookkeeping for one goroutine:
// which listener is currently collecting dependencies, and the state of
// any in-progress batch.
type trackingContext struct {
	// listener is what's currently tracking dependencies. Signal reads
	// subscribe this listener. nil means reads don't subscribe anything.
	listener Listener

	// batchDepth counts nested Batch calls. While > 0, notifications are
	// queued instead of delivered.
	batchDepth int

	// pending accumulates listeners to notify when the outermost batch
	// completes. Deduplicated by ID before delivery.
	pending []Listener
}

// trackingContexts maps goroutine ID to its tracking context.
var trackingContexts sync.Map

// goroutineID extracts the current goroutine's ID from the runtime
// stack header ("goroutine <id> ...").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentTracking() *trackingContext {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

// releaseTracking drops the goroutine's context once it carries no
// state, so the map does not grow with every goroutine ever seen.
func releaseTracking(tc *trackingContext) {
	if tc.listener == nil && tc.batchDepth == 0 && len(tc.pending) == 0 {
		trackingContexts.Delete(goroutineID())
	}
}

// setCurrentListener installs the dependency-collecting listener for
// this goroutine and returns the previous one.
func setCurrentListener(l Listener) Listener {
	tc := currentTracking()
	old := tc.listener
	tc.listener = l
	releaseTracking(tc)
	return old
}

func getCurrentListener() Listener {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext).listener
	}
	return nil
}

func getBatchDepth() int {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext).batchDepth
	}
	return 0
}

func incrementBatchDepth() {
	currentTracking().batchDepth++
}

// decrementBatchDepth reports whether the outermost batch just ended.
func decrementBatchDepth() bool {
	tc := currentTracking()
	tc.batchDepth--
	done := tc.batchDepth <= 0
	if done {
		tc.batchDepth = 0
	}
	return done
}

func queuePendingUpdate(l Listener) {
	tc := currentTracking()
	tc.pending = append(tc.pending, l)
}

func drainPendingUpdates() []Listener {
	tc := currentTracking()
	pending := tc.pending
	tc.pending = nil
	releaseTracking(tc)
	return pending
}
