package errors

// template is the registered shape of a coded error.
type template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]template{
	"E101": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create talkdeck.json or pass --config with an explicit path",
	},
	"E102": {
		Category:   CategoryConfig,
		Message:    "Configuration file is not valid JSON",
		Suggestion: "Check talkdeck.json for syntax errors",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "Configuration value out of range",
		Suggestion: "Review the reported field and correct its value",
	},
	"E201": {
		Category:   CategoryStorage,
		Message:    "Storage backend failed to open",
		Suggestion: "Check that the configured path or bucket is reachable and writable",
	},
	"E202": {
		Category:   CategoryStorage,
		Message:    "Unknown storage backend",
		Suggestion: `Use one of "memory", "sqlite", or "s3"`,
	},
	"E301": {
		Category:   CategoryFeed,
		Message:    "Feed URL is not configured",
		Suggestion: "Set feed.url in talkdeck.json or pass --feed",
	},
}
