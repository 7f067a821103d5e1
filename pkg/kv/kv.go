// Package kv provides a small concurrency-safe generic map.
package kv

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Store is a map guarded by a read/write mutex.
type Store[K cmp.Ordered, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates an empty store.
func New[K cmp.Ordered, V any]() *Store[K, V] {
	return &Store[K, V]{items: make(map[K]V)}
}

// Set stores value under key, replacing any existing value.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Keys returns all keys in sorted order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.items))
}
