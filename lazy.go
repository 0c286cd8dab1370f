package services

import (
	"fmt"
)

// Lazy wraps a dependency that is resolved on first access.
// Instantiators can hold a Lazy to a service that depends back on them:
// the cycle is only a problem if both sides are resolved during construction.
type Lazy[T any] struct {
	container *Container
	name      string
	value     T
	resolved  bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](container *Container, name string) *Lazy[T] {
	return &Lazy[T]{
		container: container,
		name:      name,
	}
}

// Get resolves the dependency and returns it.
// A successful resolution is cached; failures are returned and retried on
// the next call.
func (l *Lazy[T]) Get() (T, error) {
	if l.resolved {
		return l.value, nil
	}

	value, err := Get[T](l.container, l.name)
	if err != nil {
		return value, err
	}

	l.value = value
	l.resolved = true

	return l.value, nil
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.name, err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Name returns the name of the dependency.
func (l *Lazy[T]) Name() string {
	return l.name
}

// OptionalLazy wraps an optional dependency that is resolved on first access.
// Returns the zero value without error if the dependency is not defined or
// has been disabled.
type OptionalLazy[T any] struct {
	Lazy[T]
}

// NewOptionalLazy creates a new optional lazy dependency wrapper.
func NewOptionalLazy[T any](container *Container, name string) *OptionalLazy[T] {
	return &OptionalLazy[T]{Lazy: Lazy[T]{container: container, name: name}}
}

// Get resolves the dependency if it is available.
func (l *OptionalLazy[T]) Get() (T, error) {
	if !l.IsFound() {
		var zero T

		return zero, nil
	}

	return l.Lazy.Get()
}

// MustGet resolves the dependency and returns it, panicking on error.
// Returns the zero value if the dependency is not available (does not panic).
func (l *OptionalLazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("optional lazy dependency %s failed: %v", l.name, err))
	}

	return value
}

// IsFound returns true if the dependency is currently defined and enabled.
func (l *OptionalLazy[T]) IsFound() bool {
	return l.container.HasService(l.name) && !l.container.IsServiceDisabled(l.name)
}
