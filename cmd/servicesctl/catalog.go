package main

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xraph/services"
	"github.com/xraph/services/internal/manifest"
)

// Clock reports the time the container was assembled.
type Clock struct {
	Started time.Time
}

// Greeter builds greetings for the configured name.
type Greeter struct {
	Prefix string
	Name   string
}

// Greet returns a greeting for who.
func (g *Greeter) Greet(who string) string {
	return fmt.Sprintf("%s %s, from %s", g.Prefix, who, g.Name)
}

// Counter counts greetings and reports the total when destroyed.
type Counter struct {
	logger *zap.Logger
	count  int
}

// Inc increments the counter.
func (c *Counter) Inc() { c.count++ }

// Destroy implements services.Destructible.
func (c *Counter) Destroy() error {
	c.logger.Info("counter destroyed", zap.Int("count", c.count))
	return nil
}

// Salvage implements services.Salvageable.
func (c *Counter) Salvage(previous services.Salvageable) error {
	c.count = previous.(*Counter).count
	return nil
}

// catalog returns the wiring sets a manifest can select from.
func catalog(m manifest.Manifest, logger *zap.Logger) map[string]services.WiringSource {
	return map[string]services.WiringSource{
		"core": services.StaticWiring(services.Wiring{
			services.Define("manifest", func(*services.Container, ...any) (any, error) {
				return m, nil
			}),
			services.Define("clock", func(*services.Container, ...any) (any, error) {
				return &Clock{Started: time.Now()}, nil
			}),
			services.Define("greeter", func(c *services.Container, extra ...any) (any, error) {
				cfg, err := services.Get[manifest.Manifest](c, "manifest")
				if err != nil {
					return nil, err
				}
				prefix := "Hello"
				if len(extra) > 0 {
					prefix = strings.TrimSpace(fmt.Sprint(extra[0]))
				}
				return &Greeter{Prefix: prefix, Name: cfg.Name}, nil
			}),
		}),
		"extras": services.StaticWiring(services.Wiring{
			services.Define("counter", func(*services.Container, ...any) (any, error) {
				return &Counter{logger: logger}, nil
			}),
		}),
	}
}

// wiringSources resolves the manifest's wiring set names against the catalog.
func wiringSources(m manifest.Manifest, logger *zap.Logger) ([]services.WiringSource, error) {
	all := catalog(m, logger)

	sources := make([]services.WiringSource, 0, len(m.Wiring))
	for _, name := range m.Wiring {
		source, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown wiring set %q", name)
		}
		sources = append(sources, source)
	}
	return sources, nil
}
