package widget

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores variants by name.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

// NewRegistry creates a registry holding variants.
func NewRegistry(variants ...Variant) (*Registry, error) {
	r := &Registry{variants: make(map[string]Variant, len(variants))}
	for _, v := range variants {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a variant by its Name(). Duplicate names return an error.
func (r *Registry) Register(variant Variant) error {
	if variant == nil {
		return fmt.Errorf("widget: variant is required")
	}
	name := variant.Name()
	if name == "" {
		return fmt.Errorf("widget: variant name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.variants[name]; exists {
		return fmt.Errorf("widget: variant %q already registered", name)
	}
	r.variants[name] = variant
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(variant Variant) {
	if err := r.Register(variant); err != nil {
		panic(err)
	}
}

// Get retrieves a variant by name. Misses wrap ErrUnknownVariant.
func (r *Registry) Get(name string) (Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return variant, nil
}

// List returns a sorted list of variant names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variants returns the registered variants sorted by name.
func (r *Registry) Variants() []Variant {
	names := r.List()
	out := make([]Variant, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		if v, ok := r.variants[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether a variant is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.variants[name]
	return ok
}
