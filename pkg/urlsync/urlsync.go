// Package urlsync mirrors a form state store into a query string and seeds the
// store back from one.
package urlsync

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
)

// Codec maps a state record to query parameters and back. Decode never fails:
// absent or rejected parameters fall back to defaults.
type Codec[T any] interface {
	Encode(T) url.Values
	Decode(url.Values) T
}

// Location is the address bar the synchronizer writes to.
type Location interface {
	Query() url.Values
	Replace(url.Values)
}

// Canonical decodes q and encodes it again. The boolean reports whether q was
// already canonical, meaning a client sent every field with an accepted value
// and nothing else.
func Canonical[T any](codec Codec[T], q url.Values) (url.Values, bool) {
	canonical := codec.Encode(codec.Decode(q))
	return canonical, canonical.Encode() == q.Encode()
}

// Synchronizer keeps a Location in step with a Store. Every committed write
// rewrites the whole query; there is no debouncing.
type Synchronizer[T any] struct {
	store    *formstate.Store[T]
	codec    Codec[T]
	location Location

	mu   sync.Mutex
	stop func()
}

// New wires store, codec and location together. Call Start to begin syncing.
func New[T any](store *formstate.Store[T], codec Codec[T], location Location) (*Synchronizer[T], error) {
	if store == nil {
		return nil, fmt.Errorf("urlsync: missing store")
	}
	if codec == nil {
		return nil, fmt.Errorf("urlsync: missing codec")
	}
	if location == nil {
		return nil, fmt.Errorf("urlsync: missing location")
	}
	return &Synchronizer[T]{store: store, codec: codec, location: location}, nil
}

// Start seeds the store from the current location, writes the canonical
// query back and subscribes to further changes. It returns the seeded state.
func (s *Synchronizer[T]) Start() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		s.stop()
	}
	seeded := s.store.Replace(s.codec.Decode(s.location.Query()))
	s.location.Replace(s.codec.Encode(seeded))
	s.stop = s.store.Subscribe(func(value T) {
		s.location.Replace(s.codec.Encode(value))
	})
	return seeded
}

// Stop detaches the synchronizer from the store.
func (s *Synchronizer[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// MemoryLocation is an in-process Location keyed by a path.
type MemoryLocation struct {
	mu     sync.RWMutex
	path   string
	query  url.Values
	writes int
}

// NewMemoryLocation parses raw (a path with optional query) as the initial
// location.
func NewMemoryLocation(raw string) (*MemoryLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("urlsync: parse location: %w", err)
	}
	return &MemoryLocation{path: u.Path, query: u.Query()}, nil
}

// Query returns a copy of the current query.
func (l *MemoryLocation) Query() url.Values {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneValues(l.query)
}

// Replace overwrites the current query.
func (l *MemoryLocation) Replace(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = cloneValues(q)
	l.writes++
}

// Writes counts Replace calls.
func (l *MemoryLocation) Writes() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.writes
}

// String renders the location as path?query.
func (l *MemoryLocation) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	u := url.URL{Path: l.path, RawQuery: l.query.Encode()}
	return u.String()
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for key, values := range q {
		out[key] = append([]string(nil), values...)
	}
	return out
}
