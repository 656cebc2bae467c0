// Package kv defines the key-value capability the document store persists into.
// Implementations live under internal/kv/<driver>/ (sqlite, postgres); Memory
// is an in-process implementation for tests and ephemeral runs.
package kv

import (
	"context"
	"sync"
)

// Storage is a string key-value medium. Get reports ok=false for an absent key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Memory is a map-backed Storage safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Storage = (*Memory)(nil)

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the stored keys; used by tests to assert nothing else was touched.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
