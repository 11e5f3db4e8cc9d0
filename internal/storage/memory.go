package storage

import (
	"context"
	"sync"
)

// Memory is a KV kept in process memory.
type Memory struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{store: make(map[string]string)}
}

// GetMany returns the values present for keys.
func (m *Memory) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.store[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// SetMany overwrites all entries at once.
func (m *Memory) SetMany(ctx context.Context, entries map[string]string) error {
	m.mu.Lock()
	for k, v := range entries {
		m.store[k] = v
	}
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
