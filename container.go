package services

import (
	"slices"
	"time"

	"go.uber.org/zap"
)

// Container lazily builds, caches and manages named service instances.
type Container struct {
	extraArgs    []any
	definitions  map[string]Instantiator
	order        []string // Preserve definition order
	instances    map[string]any
	manipulators map[string][]Manipulator
	disabled     map[string]struct{}
	destroyed    bool
	resolving    *resolutionStack
	middleware   *middlewareChain
	logger       *zap.Logger
}

// newContainer creates a new container from the given options.
func newContainer(opts ...Option) *Container {
	merged := mergeOptions(opts)

	c := &Container{
		extraArgs:    merged.extraArgs,
		definitions:  make(map[string]Instantiator),
		order:        make([]string, 0),
		instances:    make(map[string]any),
		manipulators: make(map[string][]Manipulator),
		disabled:     make(map[string]struct{}),
		resolving:    newResolutionStack(),
		middleware:   newMiddlewareChain(),
		logger:       merged.logger,
	}

	for _, mw := range merged.middleware {
		c.middleware.add(mw)
	}

	return c
}

// ExtraArgs returns a copy of the arguments forwarded to instantiators.
func (c *Container) ExtraArgs() []any {
	return append([]any(nil), c.extraArgs...)
}

// Use adds middleware to the container.
// Middleware is called in the order they are added.
func (c *Container) Use(middleware Middleware) {
	c.middleware.add(middleware)
}

// DefineService registers an instantiator under name. The service is not
// constructed until it is first requested.
func (c *Container) DefineService(name string, instantiator Instantiator) error {
	if c.destroyed {
		return ErrContainerDisabled
	}

	if instantiator == nil {
		return ErrInvalidInstantiator
	}

	if _, exists := c.definitions[name]; exists {
		return ErrServiceAlreadyDefined(name)
	}

	c.define(name, instantiator)
	c.logger.Debug("service defined", zap.String("service", name))

	return nil
}

// define stores a definition without any checks.
func (c *Container) define(name string, instantiator Instantiator) {
	c.definitions[name] = instantiator
	c.order = append(c.order, name)
}

// RedefineService replaces the instantiator of a service that has not been
// instantiated yet. Redefinition clears a previous DisableService.
func (c *Container) RedefineService(name string, instantiator Instantiator) error {
	if c.destroyed {
		return ErrContainerDisabled
	}

	if _, exists := c.definitions[name]; !exists {
		return ErrNoSuchService(name)
	}

	if instantiator == nil {
		return ErrInvalidInstantiator
	}

	if _, active := c.instances[name]; active {
		return ErrCannotReplaceActive(name)
	}

	c.definitions[name] = instantiator
	delete(c.disabled, name)

	c.logger.Debug("service redefined", zap.String("service", name))

	return nil
}

// AddServiceManipulator appends a manipulator to the chain applied when the
// service is instantiated.
func (c *Container) AddServiceManipulator(name string, manipulator Manipulator) error {
	if c.destroyed {
		return ErrContainerDisabled
	}

	if _, exists := c.definitions[name]; !exists {
		return ErrNoSuchService(name)
	}

	if manipulator == nil {
		return ErrInvalidManipulator
	}

	if _, active := c.instances[name]; active {
		return ErrCannotReplaceActive(name)
	}

	c.manipulators[name] = append(c.manipulators[name], manipulator)

	return nil
}

// HasService checks if a service is defined.
func (c *Container) HasService(name string) bool {
	_, exists := c.definitions[name]

	return exists
}

// ServiceNames returns all defined service names in definition order,
// including disabled ones.
func (c *Container) ServiceNames() []string {
	return append([]string(nil), c.order...)
}

// GetService returns the instance of a service, constructing it on first use.
func (c *Container) GetService(name string) (any, error) {
	if err := c.middleware.beforeResolve(name); err != nil {
		return nil, err
	}

	service, err := c.getService(name)

	if mwErr := c.middleware.afterResolve(name, service, err); mwErr != nil {
		return nil, mwErr
	}

	return service, err
}

// getService performs the actual resolution without middleware.
func (c *Container) getService(name string) (any, error) {
	if c.destroyed {
		return nil, ErrContainerDisabled
	}

	if _, exists := c.definitions[name]; !exists {
		return nil, ErrNoSuchService(name)
	}

	if _, disabled := c.disabled[name]; disabled {
		return nil, ErrServiceDisabled(name)
	}

	if instance, ok := c.instances[name]; ok {
		return instance, nil
	}

	if c.resolving.contains(name) {
		return nil, ErrRecursiveDependency(c.resolving.cycle(name))
	}

	instance, err := c.createService(name)
	if err != nil {
		return nil, err
	}

	// The instantiator may have destroyed the container or disabled name.
	// Cleanup failures of the discarded instance are logged by destroyInstance.
	if c.destroyed || c.IsServiceDisabled(name) {
		_ = c.destroyInstance(name, instance)

		if c.destroyed {
			return nil, ErrContainerDisabled
		}

		return nil, ErrServiceDisabled(name)
	}

	c.instances[name] = instance

	return instance, nil
}

// createService runs the instantiator and manipulator chain for name. The
// name stays on the resolution stack only while this call is running.
func (c *Container) createService(name string) (any, error) {
	c.resolving.push(name)
	defer c.resolving.pop(name)

	start := time.Now()

	instance, err := c.definitions[name](c, slices.Clone(c.extraArgs)...)
	if err != nil {
		return nil, err
	}

	for _, manipulate := range c.manipulators[name] {
		instance, err = manipulate(instance, c, slices.Clone(c.extraArgs)...)
		if err != nil {
			return nil, err
		}
	}

	c.logger.Debug("service instantiated",
		zap.String("service", name),
		zap.Int("depth", c.resolving.depth()),
		zap.Int("manipulators", len(c.manipulators[name])),
		zap.Duration("elapsed", time.Since(start)),
	)

	return instance, nil
}

// PeekService returns the cached instance of a service without constructing
// it. The boolean is false if the service has not been instantiated or was
// disabled.
func (c *Container) PeekService(name string) (any, bool, error) {
	if c.destroyed {
		return nil, false, ErrContainerDisabled
	}

	if _, exists := c.definitions[name]; !exists {
		return nil, false, ErrNoSuchService(name)
	}

	instance, ok := c.instances[name]

	return instance, ok, nil
}

// ResolutionPath returns the services currently under construction, outermost
// first. It is empty outside of an instantiator call.
func (c *Container) ResolutionPath() []string {
	return c.resolving.path()
}
