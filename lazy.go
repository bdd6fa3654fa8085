package berth

import (
	"fmt"
	"sync"
)

// Lazy wraps a dependency that is resolved on first access.
// It is useful for deferring expensive services, or for services that must
// not be declared as a dependency because doing so would close a cycle.
//
// Unlike a declared dependency, a failed Get is not cached: the next call
// tries again, so a Lazy created before the env is attached still works
// afterwards.
type Lazy[T any] struct {
	container *Container
	key       Key[T]
	mu        sync.Mutex
	value     T
	resolved  bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](c *Container, key Key[T]) *Lazy[T] {
	return &Lazy[T]{
		container: c,
		key:       key,
	}
}

// Get resolves the dependency and returns it.
// Once resolved, subsequent calls return the cached value.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, nil
	}

	value, err := ResolveKeyStrict(l.container, l.key)
	if err != nil {
		var zero T

		return zero, err
	}

	l.value = value
	l.resolved = true

	return l.value, nil
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.key, err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.resolved
}

// Key returns the key of the dependency.
func (l *Lazy[T]) Key() Key[T] {
	return l.key
}

// OptionalLazy wraps an optional dependency that is resolved on first access.
// Get returns the zero value without error when nothing is registered under
// the key.
type OptionalLazy[T any] struct {
	container *Container
	key       Key[T]
	mu        sync.Mutex
	value     T
	resolved  bool
	found     bool
}

// NewOptionalLazy creates a new optional lazy dependency wrapper.
func NewOptionalLazy[T any](c *Container, key Key[T]) *OptionalLazy[T] {
	return &OptionalLazy[T]{
		container: c,
		key:       key,
	}
}

// Get resolves the dependency and returns it.
// Returns the zero value without error if the dependency is not registered.
// A registered dependency that fails to build reports its error and is
// retried on the next call.
func (l *OptionalLazy[T]) Get() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		return l.value, nil
	}

	var zero T

	if !l.container.Has(l.key.ID()) {
		return zero, nil
	}

	value, err := ResolveKeyStrict(l.container, l.key)
	if err != nil {
		return zero, err
	}

	l.value = value
	l.resolved = true
	l.found = true

	return l.value, nil
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *OptionalLazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("optional lazy dependency %s failed: %v", l.key, err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *OptionalLazy[T]) IsResolved() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.resolved
}

// IsFound returns true if the dependency was registered and resolved.
func (l *OptionalLazy[T]) IsFound() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.found
}
