// Package routes renders the resolved route table as plain YAML. The output is
// meant for review and diffing rather than for a gateway to consume.
package routes

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	"github.com/goliatone/go-gatewaygen/pkg/render"
)

// Name identifies the renderer in the registry.
const Name = "routes"

// Document is the YAML shape written for one API.
type Document struct {
	API      string               `yaml:"api"`
	Tag      string               `yaml:"tag"`
	Title    string               `yaml:"title,omitempty"`
	Version  string               `yaml:"version,omitempty"`
	BasePath string               `yaml:"basePath,omitempty"`
	Labels   map[string]string    `yaml:"labels,omitempty"`
	Routes   []mapping.RouteEntry `yaml:"routes"`
}

type Renderer struct {
	indent int
}

var _ render.Renderer = (*Renderer)(nil)

type Option func(*Renderer)

// WithIndent sets the YAML indentation width. Values below 2 are ignored.
func WithIndent(spaces int) Option {
	return func(r *Renderer) {
		if spaces >= 2 {
			r.indent = spaces
		}
	}
}

func New(options ...Option) *Renderer {
	r := &Renderer{indent: 2}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/yaml"
}

func (r *Renderer) FileSuffix() string {
	return "-routes.yaml"
}

func (r *Renderer) Render(ctx context.Context, api render.API, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("routes renderer: %w", err)
	}

	entries := api.Entries
	if !options.IncludeUnresolved {
		entries = api.Resolved()
	}
	if entries == nil {
		entries = []mapping.RouteEntry{}
	}

	doc := Document{
		API:      api.Name,
		Tag:      api.Tag,
		Title:    api.Title,
		Version:  api.Version,
		BasePath: api.BasePath,
		Labels:   options.Labels,
		Routes:   entries,
	}

	var buf bytes.Buffer
	if header := render.CommentHeader(options.Header); header != "" {
		buf.WriteString(header)
		buf.WriteByte('\n')
	}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(r.indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("routes renderer: encode %s: %w", api.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("routes renderer: encode %s: %w", api.Name, err)
	}
	return buf.Bytes(), nil
}
