package service

import (
	"context"
	"sync"
)

// memStore is an in-memory storage.Store that counts writes per key.
// onSet, when set, runs at the top of every Set, outside the lock, so
// tests can block a write in progress.
type memStore struct {
	onSet func(key string)

	mu     sync.Mutex
	values map[string]string
	sets   map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		values: make(map[string]string),
		sets:   make(map[string]int),
	}
}

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	if m.onSet != nil {
		m.onSet(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.sets[key]++
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) setCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets[key]
}

func (m *memStore) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok
}
