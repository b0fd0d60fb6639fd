package gatewaygen

import (
	"context"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
	"github.com/goliatone/go-gatewaygen/pkg/orchestrator"
	"github.com/goliatone/go-gatewaygen/pkg/render"
)

// GatewayConfig aliases the caller-side gateway settings.
type GatewayConfig = mapping.GatewayConfig

// RouteEntry aliases the per-operation routing record.
type RouteEntry = mapping.RouteEntry

// RenderOptions describes per-request settings passed through to renderers.
type RenderOptions = render.RenderOptions

// Result aliases the orchestrator output: rendered files plus diagnostics.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the OpenAPI source, derives route entries using cfg and
// renders one file per API with the named renderer ("" selects ambassador).
func Generate(ctx context.Context, source pkgopenapi.Source, cfg GatewayConfig, rendererName string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Config:   cfg,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders a pre-loaded document, bypassing the loader
// stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc pkgopenapi.Document, cfg GatewayConfig, rendererName string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Config:   cfg,
		Renderer: rendererName,
	})
}
