package gatewaygen

import (
	"io/fs"

	"github.com/goliatone/go-gatewaygen/pkg/renderers/ambassador"
)

// EmbeddedTemplates exposes the built-in Mapping templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return ambassador.TemplatesFS()
}
