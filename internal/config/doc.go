// Package config loads and validates talkdeck.json.
//
// Configuration is a single JSON file describing the HTTP listener,
// the talk feed, and the persistence backend. Missing fields fall back
// to defaults; validation failures surface as coded errors from
// internal/errors.
package config
