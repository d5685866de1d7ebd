// Package storage provides the durable key-value backends the scheduler
// persists through. A backend only needs to load and save opaque JSON blobs
// per key; it never interprets them.
package storage

import "sync"

// Backend is the persistence contract. Load returns (nil, nil) when no value
// has been saved for the key. Save is a best-effort durable write.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}

// Memory is a map-backed Backend for tests and ephemeral sessions.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Load implements Backend.
func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Save implements Backend.
func (m *Memory) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error {
	return nil
}
