package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
)

// EntryTransformer mutates a route entry after mapping and before grouping.
// Implementations can rename mappings, inject gateway settings, or perform
// arbitrary rewrites.
type EntryTransformer interface {
	Transform(ctx context.Context, entry *mapping.RouteEntry) error
}

// EntryTransformerFunc adapts plain functions to the EntryTransformer
// interface.
type EntryTransformerFunc func(ctx context.Context, entry *mapping.RouteEntry) error

// Transform executes the wrapped function when non-nil.
func (fn EntryTransformerFunc) Transform(ctx context.Context, entry *mapping.RouteEntry) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, entry)
}

// PresetTransformer applies declarative patches loaded from a YAML document.
// Patches target entries by lower-cased operation id, and the "*" entry
// applies to every resolved route:
//
//	routes:
//	  "*":
//	    extra:
//	      timeout_ms: 3000
//	  showpetbyid:
//	    namespace: legacy
//	    extra:
//	      rewrite: /pets/
//
// Patches only touch resolved entries: an entry without a service has no
// Mapping to patch.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Routes map[string]routePatch `yaml:"routes"`
}

type routePatch struct {
	Service   string         `yaml:"service"`
	Namespace string         `yaml:"namespace"`
	Prefix    string         `yaml:"prefix"`
	Extra     map[string]any `yaml:"extra"`
}

const wildcardRoute = "*"

// NewPresetTransformer constructs a transformer from raw YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the wildcard patch and then the entry's own patch.
func (t *PresetTransformer) Transform(ctx context.Context, entry *mapping.RouteEntry) error {
	if entry == nil {
		return errors.New("preset transformer: route entry is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !entry.Resolved {
		return nil
	}

	if patch, ok := t.document.Routes[wildcardRoute]; ok {
		applyRoutePatch(entry, patch)
	}
	if patch, ok := t.document.Routes[strings.ToLower(entry.OperationID)]; ok {
		applyRoutePatch(entry, patch)
	}
	return nil
}

func applyRoutePatch(entry *mapping.RouteEntry, patch routePatch) {
	if service := strings.TrimSpace(patch.Service); service != "" {
		entry.Service = service
		entry.ServiceName = mapping.ServiceName(service)
	}
	if namespace := strings.TrimSpace(patch.Namespace); namespace != "" {
		entry.Namespace = namespace
	}
	if prefix := strings.TrimSpace(patch.Prefix); prefix != "" {
		entry.Prefix = prefix
	}
	if len(patch.Extra) > 0 {
		entry.Extra = mergeExtra(entry.Extra, patch.Extra)
	}
}

// mergeExtra copies dst before writing so entries that share an Extra map
// with the parsed document are not mutated in place. Reserved keys in src
// are dropped.
func mergeExtra(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for key, value := range dst {
		out[key] = value
	}
	for key, value := range src {
		if mapping.IsReservedExtraKey(key) {
			continue
		}
		out[key] = value
	}
	return out
}
