package ambassador

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-gatewaygen/pkg/render"
	rendertemplate "github.com/goliatone/go-gatewaygen/pkg/render/template"
	gotemplate "github.com/goliatone/go-gatewaygen/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer in the registry.
	Name = "ambassador"
	// DefaultAPIVersion is the Mapping CRD version emitted when none is
	// configured.
	DefaultAPIVersion = "getambassador.io/v2"

	templateMapping           = "mapping"
	templateMappingWithPrefix = "mapping-with-prefix"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	apiVersion       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide mapping.tpl and mapping-with-prefix.tpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAPIVersion overrides the apiVersion written on every Mapping.
func WithAPIVersion(version string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			cfg.apiVersion = trimmed
		}
	}
}

// Renderer emits Ambassador Mapping resources, one YAML document per
// resolved route entry.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the ambassador renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		apiVersion: DefaultAPIVersion,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName(Name),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("ambassador renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(map[string]any{"apiVersion": cfg.apiVersion}); err != nil {
		return nil, fmt.Errorf("ambassador renderer: set global context: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/yaml"
}

func (r *Renderer) FileSuffix() string {
	return "-mapping.yaml"
}

// Render writes the Mappings for api. The prefix-aware template is selected
// as soon as one resolved entry carries a service prefix.
func (r *Renderer) Render(ctx context.Context, api render.API, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("ambassador renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ambassador renderer: %w", err)
	}

	name := templateMapping
	if api.HasPrefix() {
		name = templateMappingWithPrefix
	}

	result, err := r.templates.RenderTemplate(name, buildView(api, options))
	if err != nil {
		return nil, fmt.Errorf("ambassador renderer: render %s: %w", api.Name, err)
	}
	return []byte(result), nil
}
