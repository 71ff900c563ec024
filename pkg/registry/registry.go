package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/compinst/pkg/errors"
)

// Registry maps names to items. Names are unique; registration order is not
// preserved and listings are sorted.
type Registry[T any] interface {
	// Register adds an item, failing when the name is taken
	Register(name string, item T) error

	// Replace adds or overwrites an item
	Replace(name string, item T) error

	// Get retrieves an item, failing with NOT_FOUND when absent
	Get(name string) (T, error)

	// Lookup retrieves an item without building an error
	Lookup(name string) (T, bool)

	// Remove deletes an item
	Remove(name string) error

	// Names returns all registered names in sorted order
	Names() []string

	// Has reports whether name is registered
	Has(name string) bool

	// Len returns the number of registered items
	Len() int
}

type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty Registry
func New[T any]() Registry[T] {
	return &registry[T]{items: make(map[string]T)}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%q is already registered", name).
			WithDetail("name", name)
	}
	r.items[name] = item
	return nil
}

func (r *registry[T]) Replace(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	item, ok := r.Lookup(name)
	if !ok {
		return item, errors.Newf(errors.ErrNotFound, "%q is not registered", name).
			WithDetail("name", name)
	}
	return item, nil
}

func (r *registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	return item, ok
}

func (r *registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; !exists {
		return errors.Newf(errors.ErrNotFound, "%q is not registered", name).
			WithDetail("name", name)
	}
	delete(r.items, name)
	return nil
}

func (r *registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry[T]) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

func (r *registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics on failure. Built-in
// registrations use it, where a collision is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
