package openapi

import "context"

// Parser normalises OpenAPI documents into the Spec view downstream packages
// consume.
type Parser interface {
	Parse(ctx context.Context, doc Document) (Spec, error)
}

// ParserOptions exposes toggles for document handling.
type ParserOptions struct {
	// Validate runs kin-openapi document validation before extracting
	// operations. Defaults to true.
	Validate bool

	// AllowExternalRefs lets the parser follow $ref pointers into other
	// files or URLs.
	AllowExternalRefs bool

	// AllowEmptyPaths accepts documents without any operation, which is
	// useful for linting partial documents.
	AllowEmptyPaths bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles kin-openapi validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs toggles external reference resolution.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// WithEmptyPaths toggles support for documents without operations.
func WithEmptyPaths(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmptyPaths = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/openapi should call this helper
// to remain consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		Validate: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level gatewaygen package to avoid import cycles.
