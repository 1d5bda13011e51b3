// Package store holds the in-memory, connection-lifetime state backing the
// realtime streams: an ordered collection of records keyed by ID, mutated
// incrementally as events arrive.
package store

import "sync"

// Store is an ordered, ID-keyed collection. Appending an item whose ID is
// already present updates it in place instead of duplicating it, so replayed
// or re-pushed events cannot double up in the view.
type Store[T any] struct {
	mu    sync.RWMutex
	key   func(T) string
	order []string
	items map[string]T
}

func New[T any](key func(T) string) *Store[T] {
	return &Store[T]{
		key:   key,
		items: make(map[string]T),
	}
}

// Append adds item to the end of the collection, or updates it in place if
// an item with the same ID already exists. Returns true when a new item was
// actually appended.
func (s *Store[T]) Append(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.key(item)
	if _, ok := s.items[id]; ok {
		s.items[id] = item
		return false
	}
	s.items[id] = item
	s.order = append(s.order, id)
	return true
}

// Update applies patch to the item with the given ID, keeping its position.
func (s *Store[T]) Update(id string, patch func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return false
	}
	s.items[id] = patch(item)
	return true
}

func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, k := range s.order {
		if k == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Items returns a snapshot of the collection in arrival order.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
