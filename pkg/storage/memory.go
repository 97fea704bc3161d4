package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store. It is the default backend and the
// right choice when durability across restarts is not needed.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed{}
	}

	data, ok := m.values[key]
	if !ok {
		return nil, nil
	}

	// Copy so callers cannot mutate the stored value.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed{}
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.values[key] = stored
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.values = nil
	return nil
}
