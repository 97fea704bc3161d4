package reactive

// Batch groups multiple signal updates into a single notification
// phase. Updates inside fn are collected, deduplicated by listener ID,
// and delivered once when the outermost batch completes.
//
//	reactive.Batch(func() {
//	    timeFilter.Set("all")
//	    searchTerm.Set("")
//	    category.Set("all")
//	})
//	// Dependents recompute once.
//
// Batches nest; only the outermost completion notifies.
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

// Untracked runs fn without subscribing the current listener to any
// signal it reads. For a single read, Signal.Peek is clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
