package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gatewaygen/internal/logging"
)

// Loader reads configuration files, expanding ${VAR} references from the
// environment before decoding.
type Loader struct {
	envPattern *regexp.Regexp
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a loader backed by the process environment.
func NewLoader() *Loader {
	return &Loader{
		envPattern: regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`),
		lookupEnv:  os.LookupEnv,
	}
}

// Load reads and parses a configuration file. Relative source, output and
// preset paths are resolved against the file's directory.
func (l *Loader) Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Source = resolveRelative(dir, cfg.Source)
	cfg.Output = resolveRelative(dir, cfg.Output)
	cfg.Preset = resolveRelative(dir, cfg.Preset)
	return cfg, nil
}

// Parse decodes configuration from YAML bytes. Unknown keys are rejected so
// typos surface instead of silently falling back to defaults.
func (l *Loader) Parse(data []byte) (Config, error) {
	expanded := l.expandEnvVars(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse YAML: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values, leaving
// unset references untouched.
func (l *Loader) expandEnvVars(input string) string {
	return l.envPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if value, exists := l.lookupEnv(varName); exists {
			return value
		}
		return match
	})
}

func validate(cfg Config) error {
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for key := range cfg.Render.Labels {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("render.labels: empty label key")
		}
	}
	return nil
}

func resolveRelative(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}
	return filepath.Join(dir, path)
}
