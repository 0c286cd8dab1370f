package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xraph/services"
	"github.com/xraph/services/internal/httpapi"
	"github.com/xraph/services/internal/manifest"
)

func main() {
	manifestPath := flag.String("manifest", "", "path to a TOML or YAML manifest")
	envFile := flag.String("env", ".env", "env file to load before reading the manifest")
	serve := flag.Bool("serve", false, "serve container introspection over HTTP")
	flag.Parse()

	if err := run(*manifestPath, *envFile, *serve); err != nil {
		fmt.Fprintln(os.Stderr, "servicesctl:", err)
		os.Exit(1)
	}
}

func run(manifestPath, envFile string, serve bool) error {
	if err := manifest.LoadEnv(envFile); err != nil {
		return err
	}

	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(m.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	c, err := assemble(m, logger)
	if err != nil {
		return err
	}

	printServices(os.Stdout, c)

	if serve {
		c, err = listen(m, c, reloader(manifestPath, envFile), logger)
	}

	if destroyErr := c.Destroy(); destroyErr != nil {
		logger.Error("container destroy failed", zap.Error(destroyErr))
	}
	return err
}

// manifestLoader produces the manifest a reload assembles from.
type manifestLoader func() (manifest.Manifest, error)

// loadManifest reads the manifest named by the environment or manifestPath,
// falling back to the built-in default when neither is set.
func loadManifest(manifestPath string) (manifest.Manifest, error) {
	path := manifest.PathFromEnv(manifestPath)
	if path == "" {
		return manifest.Default(), nil
	}
	return manifest.Load(path)
}

// reloader re-reads the env file and the manifest on every call, so a SIGHUP
// picks up edits to either.
func reloader(manifestPath, envFile string) manifestLoader {
	return func() (manifest.Manifest, error) {
		if err := manifest.ReloadEnv(envFile); err != nil {
			return manifest.Manifest{}, err
		}
		return loadManifest(manifestPath)
	}
}

// assemble builds a container from the manifest and resolves every enabled
// service.
func assemble(m manifest.Manifest, logger *zap.Logger) (*services.Container, error) {
	c := services.New(
		services.WithExtraArgs(m.ExtraArgValues()...),
		services.WithLogger(logger),
		services.WithMiddleware(services.LoggingMiddleware(logger)),
	)

	if err := populate(c, m, logger); err != nil {
		_ = c.Destroy()
		return nil, err
	}

	if greeter, err := services.Get[*Greeter](c, "greeter"); err == nil {
		logger.Info(greeter.Greet("world"))
		if counter, err := services.Get[*Counter](c, "counter"); err == nil {
			counter.Inc()
		}
	}

	return c, nil
}

func populate(c *services.Container, m manifest.Manifest, logger *zap.Logger) error {
	sources, err := wiringSources(m, logger)
	if err != nil {
		return err
	}
	if err := c.LoadWiring(sources...); err != nil {
		return err
	}

	for _, name := range m.Disabled {
		if err := c.DisableService(name); err != nil {
			return err
		}
	}

	for _, name := range c.ServiceNames() {
		if c.IsServiceDisabled(name) {
			continue
		}
		if _, err := c.GetService(name); err != nil {
			return err
		}
	}
	return nil
}

func printServices(out io.Writer, c *services.Container) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATE\tTYPE\tMANIPULATORS")
	for _, info := range services.Query(c, services.ServiceQuery{}) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", info.Name, info.State, info.Type, info.Manipulators)
	}
	_ = tw.Flush()
}

// swapHandler serves the introspection router of the current container and
// lets a reload replace it.
type swapHandler struct {
	mu        sync.RWMutex
	container *services.Container
	handler   http.Handler
}

func (s *swapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.handler.ServeHTTP(w, r)
}

// reload loads the manifest again, assembles a fresh container, lets its
// services salvage state from the current one, and swaps it in. The old
// container is destroyed. On error the current container stays live.
func (s *swapHandler) reload(load manifestLoader, logger *zap.Logger) error {
	m, err := load()
	if err != nil {
		return err
	}

	fresh, err := assemble(m, logger)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := services.Salvage(fresh, s.container); err != nil {
		logger.Warn("salvage incomplete", zap.Error(err))
	}
	s.container = fresh
	s.handler = httpapi.NewRouter(fresh, logger)
	return nil
}

func (s *swapHandler) current() *services.Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.container
}

// listen serves introspection until interrupted, reloading on SIGHUP. It
// returns the container that is live when it stops.
func listen(m manifest.Manifest, c *services.Container, load manifestLoader, logger *zap.Logger) (*services.Container, error) {
	addr := m.Listen
	if addr == "" {
		addr = ":8080"
	}

	swap := &swapHandler{container: c, handler: httpapi.NewRouter(c, logger)}
	srv := &http.Server{
		Addr:              addr,
		Handler:           swap,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("introspection listening", zap.String("addr", addr), zap.String("name", m.Name))
		errCh <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			return swap.current(), err
		case <-hup:
			if err := swap.reload(load, logger); err != nil {
				logger.Error("reload failed", zap.Error(err))
				continue
			}
			logger.Info("container reloaded")
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := srv.Shutdown(shutdownCtx)
			cancel()
			return swap.current(), err
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
