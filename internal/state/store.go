package state

import "sync"

// Key identifies a source: the entity kind plus the scope it belongs to
// (a room ID for members, an account ID for rooms).
type Key struct {
	Kind  string
	Scope string
}

// Store is a keyed container for entity sequences with change
// notification. The poller replaces whole sources; list bindings
// subscribe per key and receive the new sequence on every replace.
//
// Entries are copied on the way in and out, so neither producers nor
// consumers can mutate what the store holds.
type Store[T any] struct {
	mu      sync.RWMutex
	sources map[Key][]T
	subs    map[Key]map[int]func([]T)
	nextSub int
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		sources: make(map[Key][]T),
		subs:    make(map[Key]map[int]func([]T)),
	}
}

// Replace swaps the sequence held under key and notifies that key's
// subscribers. Subscriber callbacks run on the caller's goroutine.
func (s *Store[T]) Replace(key Key, entries []T) {
	cloned := append([]T(nil), entries...)

	s.mu.Lock()
	s.sources[key] = cloned
	var callbacks []func([]T)
	for _, fn := range s.subs[key] {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(append([]T(nil), cloned...))
	}
}

// Source returns a copy of the sequence held under key; nil when the key
// has never been written.
func (s *Store[T]) Source(key Key) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.sources[key]
	if !ok {
		return nil
	}
	return append([]T(nil), entries...)
}

// Subscribe registers fn to run after every Replace of key, and returns a
// cancel function. The current sequence, if any, is delivered immediately
// so late subscribers do not miss the existing state.
func (s *Store[T]) Subscribe(key Key, fn func([]T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func([]T))
	}
	s.subs[key][id] = fn
	current, has := s.sources[key]
	if has {
		current = append([]T(nil), current...)
	}
	s.mu.Unlock()

	if has {
		fn(current)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}
