package store

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is a Store for tests and throwaway sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (m *MemoryStore) Get(ctx context.Context, key, def string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) List(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data), nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

// Atomic stages writes on a copy and swaps it in only when fn succeeds.
// The store stays locked for the duration, so fn must use tx, not m.
func (m *MemoryStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &MemoryStore{data: maps.Clone(m.data)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	m.data = staged.data
	return nil
}
