package services

import (
	"fmt"
)

// Get resolves a service with type safety.
func Get[T any](c *Container, name string) (T, error) {
	var zero T

	instance, err := c.GetService(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(name, instance)
	}

	return typed, nil
}

// MustGet resolves or panics - use only during bootstrap.
func MustGet[T any](c *Container, name string) T {
	instance, err := Get[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("failed to get service %s: %v", name, err))
	}

	return instance
}

// Peek returns the cached instance of a service with type safety, without
// constructing it. ok is false if the service is not instantiated.
func Peek[T any](c *Container, name string) (value T, ok bool, err error) {
	instance, ok, err := c.PeekService(name)
	if err != nil || !ok {
		return value, false, err
	}

	typed, isT := instance.(T)
	if !isT {
		return value, false, ErrTypeMismatch(name, instance)
	}

	return typed, true, nil
}

// DefineTyped is a convenience wrapper for instantiators returning a concrete type.
func DefineTyped[T any](c *Container, name string, instantiator func(c *Container, extra ...any) (T, error)) error {
	if instantiator == nil {
		return ErrInvalidInstantiator
	}

	return c.DefineService(name, func(c *Container, extra ...any) (any, error) {
		return instantiator(c, extra...)
	})
}

// DefineValue registers a pre-built instance.
func DefineValue[T any](c *Container, name string, instance T) error {
	return c.DefineService(name, func(*Container, ...any) (any, error) {
		return instance, nil
	})
}

// ManipulateTyped adds a manipulator that only sees and returns values of type T.
// A service instance of another type fails resolution with a type mismatch.
func ManipulateTyped[T any](c *Container, name string, manipulator func(service T, c *Container, extra ...any) (T, error)) error {
	if manipulator == nil {
		return c.AddServiceManipulator(name, nil)
	}

	return c.AddServiceManipulator(name, func(service any, c *Container, extra ...any) (any, error) {
		typed, ok := service.(T)
		if !ok {
			return nil, ErrTypeMismatch(name, service)
		}

		return manipulator(typed, c, extra...)
	})
}
