package kv

import (
	"context"
	"sync"
)

// Memory is an in-process [Store] backed by a map. It is safe for concurrent
// access and is intended for tests and local development; nothing is
// persisted across restarts.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get satisfies the [Store] interface.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put satisfies the [Store] interface.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Close satisfies the [Store] interface.
func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
