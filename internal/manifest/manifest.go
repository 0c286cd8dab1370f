// Package manifest loads the bootstrap manifest that selects which wiring
// sets a container is assembled from.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding manifest fields.
const (
	EnvManifest = "SERVICES_MANIFEST"
	EnvName     = "SERVICES_NAME"
	EnvListen   = "SERVICES_LISTEN"
	EnvLogLevel = "SERVICES_LOG_LEVEL"
	EnvDisabled = "SERVICES_DISABLED"
)

// Manifest describes how a container is assembled.
type Manifest struct {
	Name      string   `toml:"name" yaml:"name"`
	Listen    string   `toml:"listen" yaml:"listen"`
	LogLevel  string   `toml:"log_level" yaml:"log_level"`
	Wiring    []string `toml:"wiring" yaml:"wiring"`
	Disabled  []string `toml:"disabled" yaml:"disabled"`
	ExtraArgs []string `toml:"extra_args" yaml:"extra_args"`
}

// Default returns the manifest used when no file is given.
func Default() Manifest {
	m := Manifest{}
	m.applyDefaults()
	return m
}

// Load reads a TOML or YAML manifest, chosen by file extension, applies
// environment overrides and defaults, and validates the result.
func Load(path string) (Manifest, error) {
	var m Manifest
	if err := decode(path, &m); err != nil {
		return Manifest{}, err
	}

	m.applyEnv()
	m.applyDefaults()

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored; variables already set are not overwritten.
func LoadEnv(files ...string) error {
	return loadEnv(godotenv.Load, files)
}

// ReloadEnv is LoadEnv for a running process: values from the files replace
// variables that are already set, so edits made since startup take effect.
func ReloadEnv(files ...string) error {
	return loadEnv(godotenv.Overload, files)
}

func loadEnv(load func(...string) error, files []string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := load(existing...); err != nil {
		return fmt.Errorf("env load failed: %w", err)
	}
	return nil
}

// PathFromEnv returns the manifest path from the environment, or fallback.
func PathFromEnv(fallback string) string {
	if v := os.Getenv(EnvManifest); v != "" {
		return v
	}
	return fallback
}

// Validate checks the manifest for obvious mistakes.
func (m Manifest) Validate() error {
	if len(m.Wiring) == 0 {
		return fmt.Errorf("manifest %q: no wiring sets selected", m.Name)
	}
	seen := make(map[string]bool, len(m.Wiring))
	for _, w := range m.Wiring {
		if w == "" {
			return fmt.Errorf("manifest %q: empty wiring set name", m.Name)
		}
		if seen[w] {
			return fmt.Errorf("manifest %q: wiring set %q listed twice", m.Name, w)
		}
		seen[w] = true
	}
	switch m.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("manifest %q: unknown log level %q", m.Name, m.LogLevel)
	}
	return nil
}

// ExtraArgValues returns the extra args as values for a container.
func (m Manifest) ExtraArgValues() []any {
	args := make([]any, len(m.ExtraArgs))
	for i, a := range m.ExtraArgs {
		args[i] = a
	}
	return args
}

func (m *Manifest) applyDefaults() {
	if m.Name == "" {
		m.Name = "services"
	}
	if m.LogLevel == "" {
		m.LogLevel = "info"
	}
	if len(m.Wiring) == 0 {
		m.Wiring = []string{"core"}
	}
}

func (m *Manifest) applyEnv() {
	if v := os.Getenv(EnvName); v != "" {
		m.Name = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		m.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		m.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDisabled); v != "" {
		m.Disabled = splitList(v)
	}
}

func decode(path string, out *Manifest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("manifest load failed (%s): %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("manifest load failed (%s): unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("manifest parse failed (%s): %w", path, err)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
