package services

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Definition pairs a service name with its instantiator.
type Definition struct {
	Name         string
	Instantiator Instantiator
}

// Define creates a Definition for use in a Wiring.
//
// Example:
//
//	c.ApplyWiring(services.Wiring{
//	    services.Define("db", NewDatabase),
//	    services.Define("cache", NewCache),
//	})
func Define(name string, instantiator Instantiator) Definition {
	return Definition{Name: name, Instantiator: instantiator}
}

// Wiring is an ordered set of service definitions.
type Wiring []Definition

// WiringFromMap converts a map of instantiators into a Wiring sorted by name.
func WiringFromMap(m map[string]Instantiator) Wiring {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	slices.Sort(names)

	wiring := make(Wiring, 0, len(names))
	for _, name := range names {
		wiring = append(wiring, Define(name, m[name]))
	}

	return wiring
}

// Names returns the service names in wiring order.
func (w Wiring) Names() []string {
	names := make([]string, len(w))
	for i, def := range w {
		names[i] = def.Name
	}

	return names
}

// validate checks every definition before any of them is applied.
func (w Wiring) validate() error {
	for _, def := range w {
		if def.Instantiator == nil {
			return fmt.Errorf("%w: service %s", ErrInvalidInstantiator, def.Name)
		}
	}

	return nil
}

// ApplyWiring defines every service in w, in order. A nil instantiator fails
// the whole call before anything is defined; a name that is already defined
// fails with ErrServiceAlreadyDefined, leaving earlier entries defined.
func (c *Container) ApplyWiring(w Wiring) error {
	if c.destroyed {
		return ErrContainerDisabled
	}

	if err := w.validate(); err != nil {
		return err
	}

	for _, def := range w {
		if err := c.DefineService(def.Name, def.Instantiator); err != nil {
			return err
		}
	}

	return nil
}

// ImportWiring copies service definitions from source, skipping the given
// names. Services unknown to c are copied lazily along with their
// manipulators. For services c already knows, the local instantiator and any
// cached instance are kept and source's manipulators are appended to the
// local chain, taking effect on the next construction only.
func (c *Container) ImportWiring(source *Container, skip ...string) error {
	if c.destroyed || source.destroyed {
		return ErrContainerDisabled
	}

	imported := 0

	for _, name := range source.order {
		if slices.Contains(skip, name) {
			continue
		}

		if _, exists := c.definitions[name]; !exists {
			c.define(name, source.definitions[name])
			imported++
		}

		if chain := source.manipulators[name]; len(chain) > 0 {
			c.manipulators[name] = append(slices.Clone(c.manipulators[name]), chain...)
		}
	}

	c.logger.Debug("wiring imported",
		zap.Int("imported", imported),
		zap.Strings("skipped", skip),
	)

	return nil
}

// WiringSource supplies a Wiring, e.g. one per subsystem or plugin.
type WiringSource func() (Wiring, error)

// StaticWiring returns a WiringSource for a fixed Wiring.
func StaticWiring(w Wiring) WiringSource {
	return func() (Wiring, error) {
		return w, nil
	}
}

// LoadWiring applies the wiring of every source, in order. Defining the same
// service in two sources fails with ErrServiceAlreadyDefined.
func (c *Container) LoadWiring(sources ...WiringSource) error {
	for i, source := range sources {
		w, err := source()
		if err != nil {
			return fmt.Errorf("wiring source %d: %w", i, err)
		}

		if err := c.ApplyWiring(w); err != nil {
			return err
		}
	}

	return nil
}
