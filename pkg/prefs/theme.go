package prefs

// Environment is the presentation layer's theme capability: a read of
// the system color-scheme preference and an idempotent dark-mode
// switch.
type Environment interface {
	// PrefersDark reports whether the environment asks for dark mode.
	PrefersDark() bool

	// ApplyDark sets or clears the dark presentation state. Safe to
	// invoke repeatedly with the same value.
	ApplyDark(dark bool)
}

// NopEnvironment never prefers dark and applies nothing. It is the
// default for headless hosts.
type NopEnvironment struct{}

func (NopEnvironment) PrefersDark() bool { return false }
func (NopEnvironment) ApplyDark(bool)    {}

// resolveDark maps a stored theme to the applied state: auto follows
// the environment, everything else maps directly.
func resolveDark(theme Theme, env Environment) bool {
	switch theme {
	case ThemeDark:
		return true
	case ThemeAuto:
		return env.PrefersDark()
	default:
		return false
	}
}
