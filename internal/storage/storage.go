package storage

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Store is a string-keyed key-value store. Values are JSON-encoded text.
// Implementations must treat Set/Remove/Clear failures as non-fatal.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key.
	Set(key, value string)

	// Remove deletes key.
	Remove(key string)

	// Clear deletes all keys.
	Clear()
}

// MemoryStore is an in-process Store. Each instance owns its own map, so
// tests and callers stay isolated from each other.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
}

// ReadJSON loads and decodes the value under key into out. It returns
// false when the key is missing or the value does not parse; a parse
// failure is logged, never surfaced.
func ReadJSON(s Store, log *zap.Logger, key string, out any) bool {
	raw, ok := s.Get(key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		if log != nil {
			log.Warn("unable to parse storage value", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// WriteJSON encodes v and stores it under key. Encoding failures are
// logged and swallowed; the write becomes a no-op.
func WriteJSON(s Store, log *zap.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		if log != nil {
			log.Warn("unable to persist storage value", zap.String("key", key), zap.Error(err))
		}
		return
	}
	s.Set(key, string(raw))
}
