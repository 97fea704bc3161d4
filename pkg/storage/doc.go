// Package storage provides the durable key-value store behind the
// preferences aggregate. Backends write whole values under single keys;
// there are no partial writes and the last writer wins.
//
// Get returns (nil, nil) for an absent key so callers can distinguish
// "no prior state" from a backend failure.
package storage
