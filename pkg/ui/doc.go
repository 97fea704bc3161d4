// Package ui holds the ephemeral interaction state of the application:
// the talk-detail modal, the notification queue with timed
// auto-dismissal, a sidebar flag, and a global busy flag. Nothing in
// this package is persisted.
package ui
