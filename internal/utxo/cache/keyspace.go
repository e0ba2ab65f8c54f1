package cache

import "sync"

// keyspace is a concurrency-safe map guarding one key space.
type keyspace[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func newKeyspace[K comparable, V any]() *keyspace[K, V] {
	return &keyspace[K, V]{items: make(map[K]V)}
}

func (s *keyspace[K, V]) put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

func (s *keyspace[K, V]) get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *keyspace[K, V]) remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

func (s *keyspace[K, V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// resetLocked drops every entry; the caller holds mu.
func (s *keyspace[K, V]) resetLocked() {
	s.items = make(map[K]V)
}
