package prefs

// Theme is the stored theme preference. ThemeAuto is not a display
// state: it resolves to light or dark against the environment at
// application time.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ViewMode is the talk list layout.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Notification categories the user can switch off.
const (
	NotifyFavorites = "favorites"
	NotifyNewTalks  = "newTalks"
	NotifyReminders = "reminders"
)

// Preferences are the display settings. The struct is the unit of the
// persisted aggregate's "preferences" field.
type Preferences struct {
	Theme         Theme           `json:"theme"`
	ViewMode      ViewMode        `json:"viewMode"`
	ItemsPerPage  int             `json:"itemsPerPage"`
	AutoRefresh   bool            `json:"autoRefresh"`
	Notifications map[string]bool `json:"notifications"`
}

// DefaultPreferences returns the out-of-the-box settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:        ThemeLight,
		ViewMode:     ViewGrid,
		ItemsPerPage: 12,
		AutoRefresh:  true,
		Notifications: map[string]bool{
			NotifyFavorites: true,
			NotifyNewTalks:  true,
			NotifyReminders: true,
		},
	}
}

// PreferencesPatch is a partial Preferences. Nil fields mean "keep the
// current value". Using an explicit patch type keeps unknown or missing
// fields from sliding through a loose map merge.
type PreferencesPatch struct {
	Theme         *Theme          `json:"theme,omitempty"`
	ViewMode      *ViewMode       `json:"viewMode,omitempty"`
	ItemsPerPage  *int            `json:"itemsPerPage,omitempty"`
	AutoRefresh   *bool           `json:"autoRefresh,omitempty"`
	Notifications map[string]bool `json:"notifications,omitempty"`
}

// merge applies a patch field by field. Invalid values (unknown theme
// or view mode, non-positive page size) are rejected at this boundary
// and the current value kept.
func merge(base Preferences, patch PreferencesPatch) Preferences {
	out := base

	if patch.Theme != nil && validTheme(*patch.Theme) {
		out.Theme = *patch.Theme
	}
	if patch.ViewMode != nil && validViewMode(*patch.ViewMode) {
		out.ViewMode = *patch.ViewMode
	}
	if patch.ItemsPerPage != nil && *patch.ItemsPerPage > 0 {
		out.ItemsPerPage = *patch.ItemsPerPage
	}
	if patch.AutoRefresh != nil {
		out.AutoRefresh = *patch.AutoRefresh
	}
	if patch.Notifications != nil {
		merged := make(map[string]bool, len(base.Notifications)+len(patch.Notifications))
		for category, enabled := range base.Notifications {
			merged[category] = enabled
		}
		for category, enabled := range patch.Notifications {
			merged[category] = enabled
		}
		out.Notifications = merged
	}

	return out
}

func validTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeAuto
}

func validViewMode(m ViewMode) bool {
	return m == ViewGrid || m == ViewList
}
