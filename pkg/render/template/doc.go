// Package template defines the renderer-agnostic template seam. The gotemplate
// sub-package provides the pongo2-backed engine used by the built-in
// renderers.
package template
