package formstate

import "sync"

// Listener observes every committed write to a Store.
type Listener[T any] func(T)

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// Store holds the current record of one form. Writes always succeed and
// replace values unconditionally; listeners run after the write, outside the
// lock, in subscription order.
type Store[T any] struct {
	mu        sync.RWMutex
	value     T
	nextID    int
	listeners []subscription[T]
}

// NewStore seeds a store with initial.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current record.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set applies fn to the record and notifies listeners with the result.
func (s *Store[T]) Set(fn func(*T)) T {
	s.mu.Lock()
	if fn != nil {
		fn(&s.value)
	}
	value := s.value
	listeners := append([]subscription[T](nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
	return value
}

// Replace swaps the whole record.
func (s *Store[T]) Replace(value T) T {
	return s.Set(func(current *T) { *current = value })
}

// Subscribe registers fn and returns a function removing it again.
func (s *Store[T]) Subscribe(fn Listener[T]) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
