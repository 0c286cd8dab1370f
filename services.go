// Package services provides a process-local service container.
//
// A Container lazily constructs named service instances from instantiator
// functions, caches them, runs post-construction manipulators and guards
// against circular dependencies between services. Services that implement
// Destructible are cleaned up when disabled or when the container is destroyed.
//
// A Container is not safe for concurrent use. It is meant to be assembled and
// used by a single owner; callers sharing one across goroutines must serialize
// access themselves.
//
//	c := services.New(services.WithExtraArgs(cfg))
//	_ = c.DefineService("db", func(c *services.Container, extra ...any) (any, error) {
//	    return openDB(extra[0].(*Config))
//	})
//	db, err := services.Get[*DB](c, "db")
package services

// Instantiator builds a service instance. It receives the owning container
// and the container's extra arguments.
type Instantiator func(c *Container, extra ...any) (any, error)

// Manipulator transforms a freshly built service instance. The returned value
// replaces the instance for the next manipulator in the chain.
type Manipulator func(service any, c *Container, extra ...any) (any, error)

// New creates a new service container.
func New(opts ...Option) *Container {
	return newContainer(opts...)
}
