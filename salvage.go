package services

import (
	"reflect"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Salvageable is implemented by services that can take over reusable state,
// such as warm caches or open connections, from a previous instance of the
// exact same type.
//
// After Salvage returns, previous must not be used any more. Implementations
// must detach any adopted resources from previous, and should leave a
// Destructible previous in a state where its Destroy does not release them.
type Salvageable interface {
	Salvage(previous Salvageable) error
}

// Salvage hands state from the instantiated services of src over to their
// replacements in dst, then destroys src.
//
// For every service that is active in src, Salvageable, not skipped, and
// defined and enabled in dst, the replacement is resolved from dst and, if it
// has exactly the same type, its Salvage method is called with the old
// instance. Errors are collected; src is destroyed regardless.
func Salvage(dst, src *Container, skip ...string) error {
	if dst.destroyed || src.destroyed {
		return ErrContainerDisabled
	}

	var err error

	for _, name := range src.ServiceNames() {
		if slices.Contains(skip, name) || !dst.HasService(name) || dst.IsServiceDisabled(name) {
			continue
		}

		old, ok, _ := src.PeekService(name)
		if !ok {
			continue
		}

		previous, ok := old.(Salvageable)
		if !ok {
			continue
		}

		replacement, getErr := dst.GetService(name)
		if getErr != nil {
			err = multierr.Append(err, getErr)
			continue
		}

		if reflect.TypeOf(replacement) != reflect.TypeOf(old) {
			dst.logger.Debug("service not salvaged, type changed",
				zap.String("service", name),
				zap.String("old_type", typeName(old)),
				zap.String("new_type", typeName(replacement)),
			)
			continue
		}

		if salvageErr := replacement.(Salvageable).Salvage(previous); salvageErr != nil {
			err = multierr.Append(err, NewServiceError(name, "salvage", salvageErr))
			continue
		}

		dst.logger.Debug("service salvaged", zap.String("service", name))
	}

	return multierr.Append(err, src.Destroy())
}
