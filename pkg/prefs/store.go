package prefs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/talkdeck/talkdeck/pkg/reactive"
	"github.com/talkdeck/talkdeck/pkg/storage"
)

// StorageKey is the single durable key the aggregate lives under.
const StorageKey = "userPrefs"

// MaxRecentlyViewed bounds the history; the oldest entry is evicted
// when an eleventh arrives.
const MaxRecentlyViewed = 10

// persistedState is the JSON shape of the aggregate on disk.
type persistedState struct {
	Favorites      []string    `json:"favorites"`
	RecentlyViewed []string    `json:"recentlyViewed"`
	Preferences    Preferences `json:"preferences"`
}

// Snapshot is the export format. Preferences are complete, not a patch.
type Snapshot struct {
	Favorites      []string    `json:"favorites"`
	RecentlyViewed []string    `json:"recentlyViewed"`
	Preferences    Preferences `json:"preferences"`
	ExportDate     time.Time   `json:"exportDate"`
}

// ImportData is what Import accepts: nil slices mean "leave as is",
// the preferences patch merges field by field.
type ImportData struct {
	Favorites      []string         `json:"favorites"`
	RecentlyViewed []string         `json:"recentlyViewed"`
	Preferences    PreferencesPatch `json:"preferences"`
}

// Store owns favorites, recently-viewed history, and display
// preferences. Safe for concurrent use.
type Store struct {
	logger  *slog.Logger
	storage storage.Store
	env     Environment

	favorites *reactive.Signal[[]string]
	recent    *reactive.Signal[[]string]
	prefs     *reactive.Signal[Preferences]

	// onPersistError observes storage failures, for metrics.
	onPersistError func(error)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStorage sets the persistence adapter. Defaults to an in-memory
// store.
func WithStorage(st storage.Store) StoreOption {
	return func(s *Store) {
		s.storage = st
	}
}

// WithEnvironment sets the theme capability. Defaults to NopEnvironment.
func WithEnvironment(env Environment) StoreOption {
	return func(s *Store) {
		s.env = env
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithPersistErrorObserver registers a callback invoked on every failed
// durable write.
func WithPersistErrorObserver(fn func(error)) StoreOption {
	return func(s *Store) {
		s.onPersistError = fn
	}
}

// NewStore creates a preferences store with defaults. Call Init to load
// persisted state.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		favorites: reactive.NewSignal([]string{}),
		recent:    reactive.NewSignal([]string{}),
		prefs:     reactive.NewSignal(DefaultPreferences()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.storage == nil {
		s.storage = storage.NewMemoryStore()
	}
	if s.env == nil {
		s.env = NopEnvironment{}
	}
	return s
}

// Init loads persisted state and applies the theme. Absent state means
// defaults; a malformed payload degrades per field instead of failing
// the whole load. Safe to call more than once.
func (s *Store) Init(ctx context.Context) {
	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error("preferences load failed", "error", err)
		s.applyTheme()
		return
	}
	if data == nil {
		s.applyTheme()
		return
	}

	s.restore(data)
	s.applyTheme()
}

// restore decodes the aggregate one field at a time so a corrupt field
// falls back to its default without discarding the healthy ones.
func (s *Store) restore(data []byte) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("persisted preferences malformed, using defaults", "error", err)
		return
	}

	if rawField, ok := raw["favorites"]; ok {
		var favorites []string
		if err := json.Unmarshal(rawField, &favorites); err == nil {
			s.favorites.Set(dedupe(favorites))
		} else {
			s.logger.Warn("persisted favorites malformed, using defaults", "error", err)
		}
	}

	if rawField, ok := raw["recentlyViewed"]; ok {
		var recent []string
		if err := json.Unmarshal(rawField, &recent); err == nil {
			s.recent.Set(bound(dedupe(recent)))
		} else {
			s.logger.Warn("persisted history malformed, using defaults", "error", err)
		}
	}

	if rawField, ok := raw["preferences"]; ok {
		var patch PreferencesPatch
		if err := json.Unmarshal(rawField, &patch); err == nil {
			s.prefs.Set(merge(DefaultPreferences(), patch))
		} else {
			s.logger.Warn("persisted display settings malformed, using defaults", "error", err)
		}
	}
}

// Favorites

// AddToFavorites records a talk id. Adding an existing id is a no-op.
func (s *Store) AddToFavorites(talkID string) {
	changed := false
	s.favorites.Update(func(ids []string) []string {
		for _, id := range ids {
			if id == talkID {
				return ids
			}
		}
		changed = true
		return append(append([]string{}, ids...), talkID)
	})
	if changed {
		s.persist()
	}
}

// RemoveFromFavorites drops a talk id if present.
func (s *Store) RemoveFromFavorites(talkID string) {
	changed := false
	s.favorites.Update(func(ids []string) []string {
		for i, id := range ids {
			if id == talkID {
				changed = true
				kept := append([]string{}, ids[:i]...)
				return append(kept, ids[i+1:]...)
			}
		}
		return ids
	})
	if changed {
		s.persist()
	}
}

// ToggleFavorite flips membership for a talk id.
func (s *Store) ToggleFavorite(talkID string) {
	if s.IsFavorite(talkID) {
		s.RemoveFromFavorites(talkID)
	} else {
		s.AddToFavorites(talkID)
	}
}

// IsFavorite reports membership.
func (s *Store) IsFavorite(talkID string) bool {
	for _, id := range s.favorites.Get() {
		if id == talkID {
			return true
		}
	}
	return false
}

// ClearFavorites empties the set.
func (s *Store) ClearFavorites() {
	s.favorites.Set([]string{})
	s.persist()
}

// Favorites returns the set in insertion order.
func (s *Store) Favorites() []string {
	return s.favorites.Get()
}

// FavoritesCount returns the set size.
func (s *Store) FavoritesCount() int {
	return len(s.favorites.Get())
}

// HasFavorites reports whether any talk is favorited.
func (s *Store) HasFavorites() bool {
	return len(s.favorites.Get()) > 0
}

// Recently viewed

// AddToRecentlyViewed pushes a talk id to the front of the history,
// removing any prior occurrence and evicting beyond MaxRecentlyViewed.
func (s *Store) AddToRecentlyViewed(talkID string) {
	s.recent.Update(func(ids []string) []string {
		next := make([]string, 0, len(ids)+1)
		next = append(next, talkID)
		for _, id := range ids {
			if id != talkID {
				next = append(next, id)
			}
		}
		return bound(next)
	})
	s.persist()
}

// ClearRecentlyViewed empties the history.
func (s *Store) ClearRecentlyViewed() {
	s.recent.Set([]string{})
	s.persist()
}

// RecentlyViewed returns the history, most recent first.
func (s *Store) RecentlyViewed() []string {
	return s.recent.Get()
}

// RecentlyViewedCount returns the history length.
func (s *Store) RecentlyViewedCount() int {
	return len(s.recent.Get())
}

// Display preferences

// SetTheme stores the theme, persists, and re-applies it.
func (s *Store) SetTheme(theme Theme) {
	if !validTheme(theme) {
		s.logger.Warn("ignoring unknown theme", "theme", string(theme))
		return
	}
	s.prefs.Update(func(p Preferences) Preferences {
		p.Theme = theme
		return p
	})
	s.persist()
	s.applyTheme()
}

// SetViewMode stores the list layout.
func (s *Store) SetViewMode(mode ViewMode) {
	if !validViewMode(mode) {
		s.logger.Warn("ignoring unknown view mode", "mode", string(mode))
		return
	}
	s.prefs.Update(func(p Preferences) Preferences {
		p.ViewMode = mode
		return p
	})
	s.persist()
}

// SetItemsPerPage stores the page size. Non-positive values are
// rejected.
func (s *Store) SetItemsPerPage(count int) {
	if count <= 0 {
		s.logger.Warn("ignoring non-positive page size", "count", count)
		return
	}
	s.prefs.Update(func(p Preferences) Preferences {
		p.ItemsPerPage = count
		return p
	})
	s.persist()
}

// ToggleAutoRefresh flips the auto-refresh flag.
func (s *Store) ToggleAutoRefresh() {
	s.prefs.Update(func(p Preferences) Preferences {
		p.AutoRefresh = !p.AutoRefresh
		return p
	})
	s.persist()
}

// UpdateNotificationPreference switches one notification category.
func (s *Store) UpdateNotificationPreference(category string, enabled bool) {
	s.prefs.Update(func(p Preferences) Preferences {
		merged := make(map[string]bool, len(p.Notifications)+1)
		for c, e := range p.Notifications {
			merged[c] = e
		}
		merged[category] = enabled
		p.Notifications = merged
		return p
	})
	s.persist()
}

// Preferences returns a snapshot of the display settings.
func (s *Store) Preferences() Preferences {
	return s.prefs.Get()
}

// IsDarkMode reports whether the stored theme is dark. Auto does not
// count even when it resolves dark.
func (s *Store) IsDarkMode() bool {
	return s.prefs.Get().Theme == ThemeDark
}

// IsGridView reports whether the grid layout is active.
func (s *Store) IsGridView() bool {
	return s.prefs.Get().ViewMode == ViewGrid
}

// Export / import

// Export produces a portable snapshot of the aggregate.
func (s *Store) Export() Snapshot {
	return Snapshot{
		Favorites:      s.favorites.Get(),
		RecentlyViewed: s.recent.Get(),
		Preferences:    s.prefs.Get(),
		ExportDate:     time.Now().UTC(),
	}
}

// Import replaces favorites and history when present in data, merges
// the preferences patch field by field, persists once, and re-applies
// the theme.
func (s *Store) Import(data ImportData) {
	reactive.Batch(func() {
		if data.Favorites != nil {
			s.favorites.Set(dedupe(data.Favorites))
		}
		if data.RecentlyViewed != nil {
			s.recent.Set(bound(dedupe(data.RecentlyViewed)))
		}
		s.prefs.Set(merge(s.prefs.Peek(), data.Preferences))
	})
	s.persist()
	s.applyTheme()
}

// persist writes the whole aggregate under StorageKey. A failure is
// logged and reported to the observer; the in-memory state stands.
func (s *Store) persist() {
	state := persistedState{
		Favorites:      s.favorites.Peek(),
		RecentlyViewed: s.recent.Peek(),
		Preferences:    s.prefs.Peek(),
	}

	data, err := json.Marshal(state)
	if err != nil {
		s.reportPersistError(err)
		return
	}
	if err := s.storage.Set(context.Background(), StorageKey, data); err != nil {
		s.reportPersistError(err)
	}
}

func (s *Store) reportPersistError(err error) {
	s.logger.Error("preferences persist failed", "error", err)
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}

// applyTheme resolves the stored theme against the environment and
// pushes the result. Repeat applications with the same value are safe.
func (s *Store) applyTheme() {
	s.env.ApplyDark(resolveDark(s.prefs.Peek().Theme, s.env))
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func bound(ids []string) []string {
	if len(ids) > MaxRecentlyViewed {
		return ids[:MaxRecentlyViewed]
	}
	return ids
}
