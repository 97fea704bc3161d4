package ui

// ScrollLocker suppresses and restores page scrolling in the hosting
// environment while the modal is open. The store invokes each side
// exactly once per open/close transition; the lock is exclusive and
// last-writer-wins.
type ScrollLocker interface {
	Lock()
	Unlock()
}

// NopScrollLocker is the default when the hosting environment has no
// scroll to lock.
type NopScrollLocker struct{}

func (NopScrollLocker) Lock()   {}
func (NopScrollLocker) Unlock() {}
