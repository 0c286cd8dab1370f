package services

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Destructible is implemented by services that hold resources which must be
// released when the service is disabled or the container is destroyed.
//
// Destroy is called at most once per instance, and only by the container that
// owns it. Callers obtaining a service through GetService must not call it.
type Destructible interface {
	Destroy() error
}

// DisableService clears the cached instance of a service, calling its Destroy
// method if it is Destructible, and marks the service as disabled. The
// definition is kept so the service can be redefined later.
//
// The service is disabled even if Destroy fails; the cleanup error is
// returned wrapped in a service error.
func (c *Container) DisableService(name string) error {
	if c.destroyed {
		return ErrContainerDisabled
	}

	if _, exists := c.definitions[name]; !exists {
		return ErrNoSuchService(name)
	}

	var err error

	if instance, ok := c.instances[name]; ok {
		err = c.destroyInstance(name, instance)
		delete(c.instances, name)
	}

	c.disabled[name] = struct{}{}

	c.logger.Debug("service disabled", zap.String("service", name))

	return err
}

// IsServiceDisabled checks if a service has been disabled.
func (c *Container) IsServiceDisabled(name string) bool {
	_, disabled := c.disabled[name]

	return disabled
}

// Destroy calls Destroy on every instantiated Destructible service, in
// definition order, and disables the container. Every later call on the
// container fails with ErrContainerDisabled.
func (c *Container) Destroy() error {
	if c.destroyed {
		return ErrContainerDisabled
	}

	var err error

	for _, name := range c.order {
		instance, ok := c.instances[name]
		if !ok {
			continue
		}

		err = multierr.Append(err, c.destroyInstance(name, instance))
	}

	c.instances = make(map[string]any)
	c.destroyed = true

	c.logger.Debug("container destroyed", zap.Int("services", len(c.order)))

	return err
}

// IsDestroyed checks if Destroy has been called.
func (c *Container) IsDestroyed() bool {
	return c.destroyed
}

// destroyInstance calls Destroy on instance if it supports it.
func (c *Container) destroyInstance(name string, instance any) error {
	destructible, ok := instance.(Destructible)
	if !ok {
		return nil
	}

	if err := destructible.Destroy(); err != nil {
		c.logger.Warn("service cleanup failed",
			zap.String("service", name),
			zap.Error(err),
		)

		return NewServiceError(name, "destroy", err)
	}

	return nil
}
