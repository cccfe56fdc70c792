package widget

import (
	"net/url"
	"sync"
)

// session adapts a typed store and synchronizer to Session.
type session[T any] struct {
	params  []string
	set     func(param, value string) error
	get     func() T
	getter  func(T) func(string) (string, bool)
	encode  func(T) url.Values
	resolve func(url.Values) (Result, error)
	stop    func()

	closeOnce sync.Once
}

func (s *session[T]) Set(param, value string) error {
	return s.set(param, value)
}

// Values returns the raw store contents, before any policy is applied.
func (s *session[T]) Values() map[string]string {
	return stateValues(s.params, s.getter(s.get()))
}

// Result renders the current store contents through the variant's policy.
// Cleared fields stay cleared; see Variant.Edit.
func (s *session[T]) Result() (Result, error) {
	return s.resolve(s.encode(s.get()))
}

func (s *session[T]) Close() {
	s.closeOnce.Do(s.stop)
}
