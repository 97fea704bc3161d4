// Package reactive provides the reactive primitives the talkdeck stores
// are built on: signals, memos, effects, and update batching.
//
// A Signal is a thread-safe value container. Reading a signal inside a
// memo computation or an effect body subscribes that computation to the
// signal; writing the signal invalidates or re-runs its subscribers.
//
//	count := reactive.NewSignal(0)
//	double := reactive.NewMemo(func() int { return count.Get() * 2 })
//	count.Set(3)
//	double.Get() // 6
//
// Memos are lazy: a dependency change only marks them dirty, the value
// is recomputed on the next read. Effects run eagerly when created and
// re-run synchronously whenever a dependency changes.
package reactive
