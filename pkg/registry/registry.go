// Package registry keeps named items, such as the demos of the tour, behind
// a lock so they can be registered from init functions and looked up later.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/libtour/libtour/pkg/errors"
)

// Registry stores items by unique name.
type Registry[T any] interface {
	Register(name string, item T) error
	Get(name string) (T, error)
	// List returns all registered names in sorted order
	List() []string
	// Values returns all items ordered by cmp; nil cmp keeps name order
	Values(cmp func(a, b T) int) []T
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

	if _, taken := r.items[name]; taken {
		return errors.Newf(errors.ErrAlreadyExists, "%q is already registered", name).
			WithDetail("name", name)
	}
	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[name]
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%q is not registered", name).
			WithDetail("name", name)
	}
	return item, nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.items))
}

func (r *registry[T]) Values(cmp func(a, b T) int) []T {
	r.mu.RLock()
	values := make([]T, 0, len(r.items))
	for _, name := range slices.Sorted(maps.Keys(r.items)) {
		values = append(values, r.items[name])
	}
	r.mu.RUnlock()

	if cmp != nil {
		slices.SortStableFunc(values, cmp)
	}
	return values
}

// MustRegister registers an item and panics if registration fails.
// Meant for init() functions, where a duplicate name is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
