package ui

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/talkdeck/talkdeck/pkg/reactive"
)

// Store owns the transient interaction state. Safe for concurrent use.
//
// Auto-dismiss timers are explicit and keyed by notification id: manual
// removal and ClearNotifications cancel them, and a timer that fires
// after its notification is gone is a harmless no-op.
type Store struct {
	logger *slog.Logger
	scroll ScrollLocker

	modalOpen  *reactive.Signal[bool]
	selectedID *reactive.Signal[string]
	sidebar    *reactive.Signal[bool]
	busy       *reactive.Signal[bool]

	notifications *reactive.Signal[[]Notification]

	// onNotify, when set, observes every queued notification. Used by
	// the HTTP event stream and metrics.
	onNotify func(Notification)

	mu      sync.Mutex
	timers  map[string]*time.Timer
	entropy *rand.Rand
	closed  bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithScrollLocker sets the scroll-lock capability invoked on modal
// transitions. Defaults to a no-op.
func WithScrollLocker(locker ScrollLocker) StoreOption {
	return func(s *Store) {
		s.scroll = locker
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithNotifyObserver registers a callback invoked for every queued
// notification, after it is appended.
func WithNotifyObserver(fn func(Notification)) StoreOption {
	return func(s *Store) {
		s.onNotify = fn
	}
}

// NewStore creates a UI store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		modalOpen:     reactive.NewSignal(false),
		selectedID:    reactive.NewSignal(""),
		sidebar:       reactive.NewSignal(false),
		busy:          reactive.NewSignal(false),
		notifications: reactive.NewSignal([]Notification{}),
		timers:        make(map[string]*time.Timer),
		entropy:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.scroll == nil {
		s.scroll = NopScrollLocker{}
	}
	return s
}

// Modal

// OpenModal selects a talk and opens the modal, suppressing page
// scroll on the closed-to-open transition.
func (s *Store) OpenModal(talkID string) {
	wasOpen := s.modalOpen.Peek()
	reactive.Batch(func() {
		s.selectedID.Set(talkID)
		s.modalOpen.Set(true)
	})
	if !wasOpen {
		s.scroll.Lock()
	}
}

// CloseModal closes the modal and restores page scroll if it was open.
func (s *Store) CloseModal() {
	wasOpen := s.modalOpen.Peek()
	reactive.Batch(func() {
		s.modalOpen.Set(false)
		s.selectedID.Set("")
	})
	if wasOpen {
		s.scroll.Unlock()
	}
}

// ToggleModal closes the modal if it is open, regardless of the
// argument. When closed, it opens with the given id if one is supplied
// and otherwise does nothing.
func (s *Store) ToggleModal(talkID string) {
	if s.modalOpen.Peek() {
		s.CloseModal()
		return
	}
	if talkID != "" {
		s.OpenModal(talkID)
	}
}

// IsModalOpen reports the modal flag.
func (s *Store) IsModalOpen() bool {
	return s.modalOpen.Get()
}

// SelectedTalkID returns the talk shown in the modal, or "".
func (s *Store) SelectedTalkID() string {
	return s.selectedID.Get()
}

// HasActiveModal reports whether the modal is open with a talk selected.
func (s *Store) HasActiveModal() bool {
	return s.modalOpen.Get() && s.selectedID.Get() != ""
}

// Notifications

// AddNotification queues a notification and returns its id without
// blocking. Unless the duration is zero, removal is scheduled after the
// delay for its level (or the WithDuration override).
func (s *Store) AddNotification(message string, opts ...NotifyOption) string {
	cfg := notifyConfig{typ: TypeInfo}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.durationSet {
		cfg.duration = durationFor(cfg.typ)
	}

	n := Notification{
		ID:       s.newID(),
		Type:     cfg.typ,
		Message:  message,
		Duration: cfg.duration,
	}

	s.notifications.Update(func(queue []Notification) []Notification {
		return append(queue, n)
	})

	if n.Duration != 0 {
		s.scheduleDismiss(n.ID, n.Duration)
	}

	if s.onNotify != nil {
		s.onNotify(n)
	}
	return n.ID
}

// ShowSuccess queues a success notification.
func (s *Store) ShowSuccess(message string, opts ...NotifyOption) string {
	return s.AddNotification(message, append([]NotifyOption{WithType(TypeSuccess)}, opts...)...)
}

// ShowError queues an error notification.
func (s *Store) ShowError(message string, opts ...NotifyOption) string {
	return s.AddNotification(message, append([]NotifyOption{WithType(TypeError)}, opts...)...)
}

// ShowWarning queues a warning notification.
func (s *Store) ShowWarning(message string, opts ...NotifyOption) string {
	return s.AddNotification(message, append([]NotifyOption{WithType(TypeWarning)}, opts...)...)
}

// ShowInfo queues an info notification.
func (s *Store) ShowInfo(message string, opts ...NotifyOption) string {
	return s.AddNotification(message, append([]NotifyOption{WithType(TypeInfo)}, opts...)...)
}

// RemoveNotification removes by id and cancels its timer. Removing an
// id that is already gone is a no-op, so the manual path and the timer
// path are both safe to take twice.
func (s *Store) RemoveNotification(id string) {
	s.cancelTimer(id)
	s.notifications.Update(func(queue []Notification) []Notification {
		for i, n := range queue {
			if n.ID == id {
				kept := make([]Notification, 0, len(queue)-1)
				kept = append(kept, queue[:i]...)
				return append(kept, queue[i+1:]...)
			}
		}
		return queue
	})
}

// ClearNotifications empties the queue and cancels every pending timer.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.notifications.Set([]Notification{})
}

// Notifications returns the queue in display order.
func (s *Store) Notifications() []Notification {
	return s.notifications.Get()
}

// NotificationCount returns the queue length.
func (s *Store) NotificationCount() int {
	return len(s.notifications.Get())
}

// HasNotifications reports whether the queue is non-empty.
func (s *Store) HasNotifications() bool {
	return len(s.notifications.Get()) > 0
}

// Sidebar

// ToggleSidebar flips the sidebar flag.
func (s *Store) ToggleSidebar() {
	s.sidebar.Update(func(open bool) bool { return !open })
}

// OpenSidebar sets the sidebar flag.
func (s *Store) OpenSidebar() {
	s.sidebar.Set(true)
}

// CloseSidebar clears the sidebar flag.
func (s *Store) CloseSidebar() {
	s.sidebar.Set(false)
}

// IsSidebarOpen reports the sidebar flag.
func (s *Store) IsSidebarOpen() bool {
	return s.sidebar.Get()
}

// Busy flag

// SetLoading sets the global busy flag.
func (s *Store) SetLoading(loading bool) {
	s.busy.Set(loading)
}

// IsLoading reports the global busy flag.
func (s *Store) IsLoading() bool {
	return s.busy.Get()
}

// Close cancels all pending auto-dismiss timers. The store remains
// usable for reads; further scheduling is suppressed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) scheduleDismiss(id string, after time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.timers[id] = time.AfterFunc(after, func() {
		s.RemoveNotification(id)
	})
}

func (s *Store) cancelTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}
