// Package config loads gatewaygen settings from YAML files and watches the
// files a generation run depends on.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	"github.com/goliatone/go-gatewaygen/pkg/render"
)

// Config mirrors the YAML file accepted by `gatewaygen generate --config`.
// Command line flags that were explicitly set take precedence over it.
type Config struct {
	Source   string  `yaml:"source"`
	Output   string  `yaml:"output"`
	Renderer string  `yaml:"renderer"`
	LogLevel string  `yaml:"log_level"`
	Preset   string  `yaml:"preset"`
	Gateway  Gateway `yaml:"gateway"`
	Render   Render  `yaml:"render"`
}

// Gateway holds the caller-side gateway settings.
type Gateway struct {
	TargetService      string     `yaml:"target_service"`
	TargetNamespace    string     `yaml:"target_namespace"`
	ServicePrefix      string     `yaml:"service_prefix"`
	OverrideExtensions bool       `yaml:"override_extensions"`
	IgnoreOperations   IgnoreList `yaml:"ignore_operations"`
}

// Render holds renderer pass-through settings.
type Render struct {
	Header            string            `yaml:"header"`
	Labels            map[string]string `yaml:"labels"`
	IncludeUnresolved bool              `yaml:"include_unresolved"`
}

// IgnoreList accepts either a YAML sequence or a comma-separated string.
type IgnoreList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *IgnoreList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = ParseIgnoreList(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return fmt.Errorf("ignore_operations: %w", err)
		}
		var out IgnoreList
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("ignore_operations: line %d: expected a list or a comma-separated string", value.Line)
	}
}

// ParseIgnoreList splits a comma-separated list of operation ids. Entries are
// trimmed and empty entries dropped; ids stay case-sensitive.
func ParseIgnoreList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GatewayConfig converts the file settings into the mapping configuration.
func (c Config) GatewayConfig() mapping.GatewayConfig {
	return mapping.GatewayConfig{
		TargetService:      strings.TrimSpace(c.Gateway.TargetService),
		TargetNamespace:    strings.TrimSpace(c.Gateway.TargetNamespace),
		ServicePrefix:      strings.TrimSpace(c.Gateway.ServicePrefix),
		OverrideExtensions: c.Gateway.OverrideExtensions,
		IgnoreOperationIDs: mapping.NewIgnoreSet(c.Gateway.IgnoreOperations...),
	}
}

// RenderOptions converts the file settings into renderer options.
func (c Config) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Header:            c.Render.Header,
		Labels:            c.Render.Labels,
		IncludeUnresolved: c.Render.IncludeUnresolved,
	}
}
