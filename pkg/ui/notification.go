package ui

import "time"

// Type is the notification severity level.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
)

// Default auto-dismiss delays per level. Errors linger longest.
const (
	DefaultDuration        = 3 * time.Second
	DefaultWarningDuration = 4 * time.Second
	DefaultErrorDuration   = 5 * time.Second
)

// Notification is a transient message in the queue. Duration 0 means
// the notification stays until removed explicitly.
type Notification struct {
	ID       string        `json:"id"`
	Type     Type          `json:"type"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

// NotifyOption configures a notification at creation time.
type NotifyOption func(*notifyConfig)

type notifyConfig struct {
	typ         Type
	duration    time.Duration
	durationSet bool
}

// WithType sets the severity level. Defaults to TypeInfo.
func WithType(t Type) NotifyOption {
	return func(c *notifyConfig) {
		c.typ = t
	}
}

// WithDuration overrides the auto-dismiss delay. Zero makes the
// notification persistent.
func WithDuration(d time.Duration) NotifyOption {
	return func(c *notifyConfig) {
		c.duration = d
		c.durationSet = true
	}
}

// durationFor returns the default delay for a level.
func durationFor(t Type) time.Duration {
	switch t {
	case TypeError:
		return DefaultErrorDuration
	case TypeWarning:
		return DefaultWarningDuration
	default:
		return DefaultDuration
	}
}
