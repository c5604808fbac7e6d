package store

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Adapter. Save is a no-op.
//
// MemoryStore is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

var _ Adapter = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) get(key string, kind Kind) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.Kind != kind {
		return Entry{}, false
	}

	return e, true
}

func (s *MemoryStore) set(key string, e Entry) {
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// GetInt32 returns the int stored at key, or def if key holds no int.
func (s *MemoryStore) GetInt32(key string, def int32) int32 {
	if e, ok := s.get(key, KindInt); ok {
		return e.Int
	}

	return def
}

// SetInt32 stores an int at key, replacing any previous value.
func (s *MemoryStore) SetInt32(key string, v int32) {
	s.set(key, Entry{Kind: KindInt, Int: v})
}

// GetFloat32 returns the float stored at key, or def if key holds no float.
func (s *MemoryStore) GetFloat32(key string, def float32) float32 {
	if e, ok := s.get(key, KindFloat); ok {
		return e.Float
	}

	return def
}

// SetFloat32 stores a float at key, replacing any previous value.
func (s *MemoryStore) SetFloat32(key string, v float32) {
	s.set(key, Entry{Kind: KindFloat, Float: v})
}

// GetString returns the string stored at key, or def if key holds no string.
func (s *MemoryStore) GetString(key string, def string) string {
	if e, ok := s.get(key, KindString); ok {
		return e.Str
	}

	return def
}

// SetString stores a string at key, replacing any previous value.
func (s *MemoryStore) SetString(key string, v string) {
	s.set(key, Entry{Kind: KindString, Str: v})
}

// HasKey reports whether key holds a value of any kind.
func (s *MemoryStore) HasKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]

	return ok
}

// DeleteKey removes key. Deleting a missing key is a no-op.
func (s *MemoryStore) DeleteKey(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Save is a no-op for the in-memory store.
func (s *MemoryStore) Save() error {
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Keys returns the stored keys in sorted order.
//
// The keys are collected when Keys is called, so the store can be modified
// while ranging over the result.
func (s *MemoryStore) Keys() iter.Seq[string] {
	s.mu.RLock()
	keys := slices.Sorted(maps.Keys(s.entries))
	s.mu.RUnlock()

	return slices.Values(keys)
}

// Entry returns the raw entry at key.
func (s *MemoryStore) Entry(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]

	return e, ok
}

func (s *MemoryStore) snapshot() map[string]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.entries)
}

func (s *MemoryStore) replace(entries map[string]Entry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}
