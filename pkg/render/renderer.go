package render

import (
	"context"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
)

// Renderer converts one API group of route entries into a gateway
// configuration artifact.
type Renderer interface {
	Name() string
	ContentType() string
	// FileSuffix is appended to the API name to build the output file name,
	// e.g. "-mapping.yaml".
	FileSuffix() string
	Render(ctx context.Context, api API, options RenderOptions) ([]byte, error)
}

// API is the unit a renderer emits: one output file per API.
type API struct {
	Name     string
	Tag      string
	Title    string
	Version  string
	BasePath string
	Entries  []mapping.RouteEntry
}

// FileName returns the output file name for the API under renderer r.
func FileName(r Renderer, api API) string {
	return api.Name + r.FileSuffix()
}

// Resolved returns the entries that carry gateway metadata. Entries without
// a resolvable service cannot be routed and are left to the caller.
func (a API) Resolved() []mapping.RouteEntry {
	out := make([]mapping.RouteEntry, 0, len(a.Entries))
	for _, entry := range a.Entries {
		if entry.Resolved {
			out = append(out, entry)
		}
	}
	return out
}

// HasPrefix reports whether any resolved entry carries a service prefix.
func (a API) HasPrefix() bool {
	for _, entry := range a.Entries {
		if entry.Resolved && entry.Prefix != "" {
			return true
		}
	}
	return false
}
