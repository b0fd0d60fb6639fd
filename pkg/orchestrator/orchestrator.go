package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-gatewaygen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-gatewaygen/internal/openapi/parser"
	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
	"github.com/goliatone/go-gatewaygen/pkg/render"
	"github.com/goliatone/go-gatewaygen/pkg/renderers/ambassador"
	"github.com/goliatone/go-gatewaygen/pkg/renderers/routes"
)

const defaultRendererName = ambassador.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger routes diagnostics and progress messages through logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEntryTransformer registers transformers that run, in order, against
// every route entry before grouping.
func WithEntryTransformer(transformers ...EntryTransformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Orchestrator coordinates the full pipeline from OpenAPI document to gateway
// configuration files. It applies defaults (ambassador renderer, embedded
// templates, no-op logger) while remaining open to dependency injection.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	registry        *render.Registry
	defaultRenderer string
	logger          *zap.Logger
	transformers    []EntryTransformer
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of one generation run.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when Document
	// is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already hold the
	// raw payload.
	Document *pkgopenapi.Document

	// Config carries the caller's gateway settings. The zero value defers
	// entirely to the document's x-ambassador defaults.
	Config mapping.GatewayConfig

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions is passed through to the renderer untouched.
	RenderOptions render.RenderOptions
}

// File is one rendered artifact.
type File struct {
	Name    string
	Content []byte
}

// Result collects everything a generation run produced. Diagnostics are
// returned even though they were already logged so callers can gate on them.
type Result struct {
	Files       []File
	APIs        []render.API
	Diagnostics mapping.Diagnostics
}

// Generate executes the loader → parser → mapping → renderer sequence and
// returns one file per API group.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	spec, err := o.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	defaults, diags := mapping.ResolveDefaults(spec)
	entries, transformDiags := mapping.Transform(spec.Operations, defaults, req.Config)
	diags = append(diags, transformDiags...)
	o.logDiagnostics(diags)

	if err := o.applyTransformers(ctx, entries); err != nil {
		return Result{}, err
	}

	var result Result
	result.Diagnostics = diags
	for _, group := range mapping.GroupByTag(entries) {
		api := render.API{
			Name:     group.Name,
			Tag:      group.Tag,
			Title:    spec.Title,
			Version:  spec.Version,
			BasePath: defaults.BasePath,
			Entries:  group.Entries,
		}
		output, err := renderer.Render(ctx, api, req.RenderOptions)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: render %s: %w", api.Name, err)
		}
		result.APIs = append(result.APIs, api)
		result.Files = append(result.Files, File{
			Name:    render.FileName(renderer, api),
			Content: output,
		})
	}

	o.logger.Info("generated gateway configuration",
		zap.String("renderer", renderer.Name()),
		zap.Int("operations", len(spec.Operations)),
		zap.Int("routes", len(entries)),
		zap.Int("files", len(result.Files)),
	)
	return result, nil
}

// Lint loads and parses the request document and reports malformed
// x-ambassador blocks. The request's Config and Renderer are ignored.
func (o *Orchestrator) Lint(ctx context.Context, req Request) ([]mapping.Violation, error) {
	spec, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return mapping.Lint(spec), nil
}

// Inspect loads and parses the request document without mapping it, for
// callers that need the operation list or document defaults up front.
func (o *Orchestrator) Inspect(ctx context.Context, req Request) (pkgopenapi.Spec, error) {
	return o.prepare(ctx, req)
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (pkgopenapi.Spec, error) {
	if ctx == nil {
		return pkgopenapi.Spec{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Spec{}, err
	}
	if err := o.initialiseErr; err != nil {
		return pkgopenapi.Spec{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return pkgopenapi.Spec{}, err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return pkgopenapi.Spec{}, err
	}

	spec, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return pkgopenapi.Spec{}, fmt.Errorf("orchestrator: parse document: %w", err)
	}
	return spec, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformers(ctx context.Context, entries []mapping.RouteEntry) error {
	if len(o.transformers) == 0 {
		return nil
	}
	for i := range entries {
		for _, transformer := range o.transformers {
			if err := transformer.Transform(ctx, &entries[i]); err != nil {
				return fmt.Errorf("orchestrator: transform %s: %w", entries[i].OperationID, err)
			}
		}
	}
	return nil
}

func (o *Orchestrator) logDiagnostics(diags mapping.Diagnostics) {
	for _, diag := range diags {
		fields := []zap.Field{zap.String("kind", string(diag.Kind))}
		if diag.OperationID != "" {
			fields = append(fields, zap.String("operation_id", diag.OperationID))
		}
		switch diag.Severity {
		case mapping.SeverityWarning:
			o.logger.Warn(diag.Message, fields...)
		case mapping.SeverityInfo:
			o.logger.Info(diag.Message, fields...)
		default:
			o.logger.Debug(diag.Message, fields...)
		}
	}
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry, o.initialiseErr = defaultRegistry()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func defaultRegistry() (*render.Registry, error) {
	renderer, err := ambassador.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	registry, err := render.NewRegistry(renderer, routes.New())
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default registry: %w", err)
	}
	return registry, nil
}
