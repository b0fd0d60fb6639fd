package ambassador

import (
	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	"github.com/goliatone/go-gatewaygen/pkg/render"
)

// serviceLabel is always set from the entry and cannot be replaced through
// RenderOptions.Labels.
const serviceLabel = "service"

func buildView(api render.API, options render.RenderOptions) map[string]any {
	mappings := make([]any, 0, len(api.Entries))
	var skipped []any

	for _, entry := range api.Entries {
		if !entry.Resolved {
			if options.IncludeUnresolved {
				skipped = append(skipped, entry.OperationID)
			}
			continue
		}
		mappings = append(mappings, mappingView(entry, options.Labels))
	}

	return map[string]any{
		"header":   render.CommentHeader(options.Header),
		"api":      map[string]any{"name": api.Name, "tag": api.Tag},
		"mappings": mappings,
		"skipped":  skipped,
	}
}

func mappingView(entry mapping.RouteEntry, extraLabels map[string]string) map[string]any {
	labels := make(map[string]any, len(extraLabels)+1)
	for key, value := range extraLabels {
		labels[key] = value
	}
	labels[serviceLabel] = entry.ServiceName

	view := map[string]any{
		"name":      entry.OperationID,
		"namespace": entry.Namespace,
		"method":    entry.Method,
		"path":      entry.Path,
		"fullPath":  entry.FullPath(),
		"service":   entry.Service,
		"labels":    labels,
	}
	if extra := passThrough(entry.Extra); len(extra) > 0 {
		view["extra"] = extra
	}
	return view
}

// passThrough drops keys the template always writes itself.
func passThrough(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for key, value := range extra {
		if mapping.IsReservedExtraKey(key) {
			continue
		}
		out[key] = value
	}
	return out
}
