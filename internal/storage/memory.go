package storage

import "sync"

// Memory is a map-backed preference store with the same behaviour as DB.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key, or ErrNotFound.
func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores one value.
func (m *Memory) Set(key, value string) error {
	return m.SetMany(map[string]string{key: value})
}

// SetMany stores all values under one lock.
func (m *Memory) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

// Delete removes keys. Missing keys are ignored.
func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
