package services

import (
	"time"

	"go.uber.org/zap"
)

// Middleware provides hooks for intercepting service resolution.
// Middleware can be used for logging, access control, testing, etc.
type Middleware interface {
	// BeforeResolve is called before resolving a service.
	// Return error to abort resolution.
	BeforeResolve(name string) error

	// AfterResolve is called after resolving a service.
	// Called even if resolution failed (service and err may both be set).
	AfterResolve(name string, service any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(name string) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(name); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(name string, service any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(name, service, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(name string) error
	AfterResolveFunc  func(name string, service any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(name string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(name)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(name string, service any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(name, service, err)
	}
	return nil
}

// LoggingMiddleware logs every resolution with its duration. Failed
// resolutions are logged at warn level.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	started := make([]time.Time, 0)

	return &FuncMiddleware{
		BeforeResolveFunc: func(name string) error {
			started = append(started, time.Now())
			return nil
		},
		AfterResolveFunc: func(name string, service any, err error) error {
			var elapsed time.Duration
			if n := len(started); n > 0 {
				elapsed = time.Since(started[n-1])
				started = started[:n-1]
			}

			if err != nil {
				logger.Warn("service resolution failed",
					zap.String("service", name),
					zap.Duration("elapsed", elapsed),
					zap.Error(err),
				)
				return nil
			}

			logger.Debug("service resolved",
				zap.String("service", name),
				zap.String("type", typeName(service)),
				zap.Duration("elapsed", elapsed),
			)
			return nil
		},
	}
}
