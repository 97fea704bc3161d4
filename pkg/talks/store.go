package talks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/talkdeck/talkdeck/pkg/reactive"
)

// Time filter buckets. Buckets are a convention, not enforced: setters
// accept any string.
const (
	TimeAll      = "all"
	TimeToday    = "today"
	TimeTomorrow = "tomorrow"
	TimeWeek     = "week"
)

// CategoryAll is the sentinel that disables the category filter.
const CategoryAll = "all"

// Criteria is the filter state applied to the talk collection. The
// three stages are independent conjunctions: each only narrows the set.
type Criteria struct {
	TimeFilter string `json:"timeFilter"`
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
}

// DefaultCriteria returns the filter state with everything passing.
func DefaultCriteria() Criteria {
	return Criteria{
		TimeFilter: TimeAll,
		SearchTerm: "",
		Category:   CategoryAll,
	}
}

// Store owns the talk collection, its loading/error state, and the
// filter criteria, and derives the filtered view. Safe for concurrent
// use.
type Store struct {
	logger *slog.Logger
	source Source

	talks   *reactive.Signal[[]Talk]
	loading *reactive.Signal[bool]
	loadErr *reactive.Signal[string]

	timeFilter *reactive.Signal[string]
	searchTerm *reactive.Signal[string]
	category   *reactive.Signal[string]

	filtered *reactive.Memo[[]Talk]
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a talks store backed by the given source.
func NewStore(source Source, opts ...StoreOption) *Store {
	def := DefaultCriteria()
	s := &Store{
		source:     source,
		talks:      reactive.NewSignal([]Talk{}),
		loading:    reactive.NewSignal(false),
		loadErr:    reactive.NewSignal(""),
		timeFilter: reactive.NewSignal(def.TimeFilter),
		searchTerm: reactive.NewSignal(def.SearchTerm),
		category:   reactive.NewSignal(def.Category),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.filtered = reactive.NewMemo(s.applyFilters)
	return s
}

// Load fetches the full collection from the source and replaces the
// cached copy. On failure the previous collection is kept and the error
// message is exposed via LoadError; the failure is never returned to
// the caller. The loading flag is guaranteed to clear on every exit
// path.
func (s *Store) Load(ctx context.Context) {
	s.loading.Set(true)
	s.loadErr.Set("")
	defer s.loading.Set(false)

	talks, err := s.source.FetchTalks(ctx)
	if err != nil {
		s.logger.Error("talks load failed", "error", err)
		s.loadErr.Set(err.Error())
		return
	}

	s.talks.Set(talks)
}

// Talks returns the cached collection. Callers must not mutate it.
func (s *Store) Talks() []Talk {
	return s.talks.Get()
}

// IsLoading reports whether a load is in flight.
func (s *Store) IsLoading() bool {
	return s.loading.Get()
}

// LoadError returns the message from the last failed load, or "" after
// a successful one.
func (s *Store) LoadError() string {
	return s.loadErr.Get()
}

// Filtered returns the derived view of the collection with the current
// criteria applied.
func (s *Store) Filtered() []Talk {
	return s.filtered.Get()
}

// Count returns the size of the full collection.
func (s *Store) Count() int {
	return len(s.talks.Get())
}

// FilteredCount returns the size of the filtered view.
func (s *Store) FilteredCount() int {
	return len(s.filtered.Get())
}

// Criteria returns a snapshot of the current filter state.
func (s *Store) Criteria() Criteria {
	return Criteria{
		TimeFilter: s.timeFilter.Get(),
		SearchTerm: s.searchTerm.Get(),
		Category:   s.category.Get(),
	}
}

// SetTimeFilter sets the time bucket filter.
func (s *Store) SetTimeFilter(filter string) {
	s.timeFilter.Set(filter)
}

// SetSearchTerm sets the free-text search term.
func (s *Store) SetSearchTerm(term string) {
	s.searchTerm.Set(term)
}

// SetCategory sets the category filter. CategoryAll disables it.
func (s *Store) SetCategory(category string) {
	s.category.Set(category)
}

// ClearFilters resets the criteria to defaults, recomputing the view
// once.
func (s *Store) ClearFilters() {
	def := DefaultCriteria()
	reactive.Batch(func() {
		s.timeFilter.Set(def.TimeFilter)
		s.searchTerm.Set(def.SearchTerm)
		s.category.Set(def.Category)
	})
}

// TalkByID looks up a talk in the cached collection. A miss is not an
// error.
func (s *Store) TalkByID(id string) (Talk, bool) {
	for _, talk := range s.talks.Get() {
		if talk.ID == id {
			return talk, true
		}
	}
	return Talk{}, false
}

// applyFilters is the memoized filter pipeline. Stage order matters:
// time bucket, then search, then category.
func (s *Store) applyFilters() []Talk {
	filtered := s.talks.Get()

	// Stage 1: time bucket. Currently a pass-through for every bucket.
	// TODO: bucket by Talk.Date for today/tomorrow/week once the week
	// boundary semantics are settled.
	if s.timeFilter.Get() != TimeAll {
		kept := make([]Talk, 0, len(filtered))
		for _, talk := range filtered {
			kept = append(kept, talk)
		}
		filtered = kept
	}

	// Stage 2: case-insensitive substring search over title, speaker
	// names, and description. A talk matches if any field matches.
	if term := strings.ToLower(s.searchTerm.Get()); term != "" {
		kept := make([]Talk, 0, len(filtered))
		for _, talk := range filtered {
			if talkMatches(talk, term) {
				kept = append(kept, talk)
			}
		}
		filtered = kept
	}

	// Stage 3: exact category match.
	if category := s.category.Get(); category != CategoryAll {
		kept := make([]Talk, 0, len(filtered))
		for _, talk := range filtered {
			if talk.Category == category {
				kept = append(kept, talk)
			}
		}
		filtered = kept
	}

	return filtered
}

func talkMatches(talk Talk, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(talk.Title), lowerTerm) {
		return true
	}
	for _, sp := range talk.Speakers {
		if strings.Contains(strings.ToLower(sp.Name), lowerTerm) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(talk.Description), lowerTerm)
}
