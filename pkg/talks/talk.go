package talks

// Talk is a scheduled talk. The collection is owned by an external
// source; the store holds a cached copy that is only ever replaced
// wholesale by a load.
//
// User-level bookmarking lives in the preferences store's favorites
// relation, keyed by Talk.ID; the talk itself carries no bookmark flag.
type Talk struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Date is the calendar day in ISO form ("2025-06-15"). StartTime and
	// EndTime are wall-clock times ("09:00" or "09:00:00").
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	// MeetingLink is the URL to join the talk remotely.
	MeetingLink string `json:"msTeamsLink,omitempty"`

	// Category is the primary classification used by the category
	// filter; Tags carry the finer-grained labels.
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	Speakers []Speaker `json:"speakers,omitempty"`
}

// Speaker is embedded in a Talk. Internal speakers have a Department;
// external speakers have a Company and Position. The unused branch is
// left empty.
type Speaker struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Internal bool   `json:"isInternal"`

	Department string `json:"department,omitempty"`

	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
}
