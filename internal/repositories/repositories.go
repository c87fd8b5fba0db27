package repositories

import (
	"maps"
	"slices"
	"sync"
)

// Persisted state keys.
const (
	FavoritesKey = "showfinder_favorites_v2"
	ThemeKey     = "showfinder_theme_v2"
)

// KV is a string key/value store for persisted client state.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV is an in-process [KV] used for ephemeral runs and tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty [MemoryKV], optionally seeded with initial values.
func NewMemoryKV(seed map[string]string) *MemoryKV {
	values := make(map[string]string, len(seed))
	maps.Copy(values, seed)
	return &MemoryKV{values: values}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.values))
}
