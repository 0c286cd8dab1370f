package services

// ServiceKey provides type-safe service identification.
// Use NewServiceKey to create typed keys for your services.
type ServiceKey[T any] struct {
	name string
}

// NewServiceKey creates a new typed service key.
// The type parameter T ensures type safety when defining and resolving services.
//
// Example:
//
//	var DatabaseKey = NewServiceKey[*Database]("database")
func NewServiceKey[T any](name string) ServiceKey[T] {
	return ServiceKey[T]{name: name}
}

// Name returns the string name of the service key.
func (k ServiceKey[T]) Name() string {
	return k.name
}

// DefineWithKey defines a service using a typed service key.
//
// Example:
//
//	DefineWithKey(c, DatabaseKey, func(c *Container, extra ...any) (*Database, error) {
//	    return &Database{}, nil
//	})
func DefineWithKey[T any](c *Container, key ServiceKey[T], instantiator func(c *Container, extra ...any) (T, error)) error {
	return DefineTyped(c, key.name, instantiator)
}

// GetWithKey resolves a service using a typed service key.
func GetWithKey[T any](c *Container, key ServiceKey[T]) (T, error) {
	return Get[T](c, key.name)
}

// MustWithKey resolves a service using a typed service key and panics on error.
func MustWithKey[T any](c *Container, key ServiceKey[T]) T {
	result, err := GetWithKey(c, key)
	if err != nil {
		panic(err)
	}
	return result
}

// PeekWithKey returns the cached instance for a typed service key.
func PeekWithKey[T any](c *Container, key ServiceKey[T]) (T, bool, error) {
	return Peek[T](c, key.name)
}

// HasKey checks if a service is defined using a typed service key.
func HasKey[T any](c *Container, key ServiceKey[T]) bool {
	return c.HasService(key.name)
}

// InspectKey returns diagnostic information about a service using a typed service key.
func InspectKey[T any](c *Container, key ServiceKey[T]) ServiceInfo {
	return c.Inspect(key.name)
}
