package storage

import "context"

// Store is the persistence adapter interface. Implementations must be
// safe for concurrent use.
type Store interface {
	// Get retrieves the value for a key. Returns (nil, nil) when the key
	// has never been written, and (nil, err) on backend errors.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value for a key.
	Set(ctx context.Context, key string, data []byte) error

	// Close releases backend resources.
	Close() error
}

// ErrClosed is returned when operations are attempted on a closed store.
type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "storage: store is closed"
}
