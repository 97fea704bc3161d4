// Package prefs owns the durable user state: the favorites set, the
// recently-viewed history, and the display preferences. Every mutation
// persists the whole aggregate synchronously through a storage.Store;
// persistence failures are logged and never roll back the in-memory
// change. Theme changes additionally drive the hosting environment's
// dark-mode switch.
package prefs
