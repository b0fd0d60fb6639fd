package parser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Parse converts a Document into the Spec view. Operations keep the order in
// which the document declares them.
func (p *Parser) Parse(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.Spec, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Spec{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Spec{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.AllowExternalRefs,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Spec{}, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.Spec{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	out := pkgopenapi.Spec{
		Servers:    serverURLs(spec.Servers),
		Extensions: extractExtensions(spec.Extensions),
	}
	if spec.Info != nil {
		out.Title = spec.Info.Title
		out.Version = spec.Info.Version
	}

	if spec.Paths != nil && spec.Paths.Len() > 0 {
		order := declarationOrder(raw)
		for _, path := range orderedPaths(order, spec.Paths.Map()) {
			if err := ctx.Err(); err != nil {
				return pkgopenapi.Spec{}, err
			}
			item := spec.Paths.Value(path)
			if item == nil {
				continue
			}
			out.Operations = p.collectOperations(out.Operations, path, item, order.methodsOf(path))
		}
	}

	if len(out.Operations) == 0 && !p.options.AllowEmptyPaths {
		return pkgopenapi.Spec{}, errors.New("openapi parser: document does not contain any operations")
	}

	return out, nil
}

func (p *Parser) collectOperations(target []pkgopenapi.Operation, path string, item *openapi3.PathItem, declared []string) []pkgopenapi.Operation {
	operations := item.Operations()
	for _, method := range orderMethods(declared, operations) {
		operation := operations[method]
		if operation == nil {
			continue
		}
		opID := strings.TrimSpace(operation.OperationID)
		if opID == "" {
			opID = synthesizeOperationID(method, path)
		}

		op, err := pkgopenapi.NewOperation(opID, method, path)
		if err != nil {
			// Invalid operations are skipped but noted by leaving them out.
			continue
		}
		op.Summary = operation.Summary
		if len(operation.Tags) > 0 {
			op.Tags = append([]string(nil), operation.Tags...)
		}
		op.Extensions = extractExtensions(operation.Extensions)
		target = append(target, op)
	}
	return target
}

func serverURLs(servers openapi3.Servers) []string {
	if len(servers) == 0 {
		return nil
	}
	urls := make([]string, 0, len(servers))
	for _, server := range servers {
		if server == nil {
			continue
		}
		urls = append(urls, server.URL)
	}
	return urls
}

var nonIdentifierChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// synthesizeOperationID derives a stable identifier for operations that omit
// operationId, e.g. GET /users/{id} becomes get_users_id.
func synthesizeOperationID(method, path string) string {
	sanitized := nonIdentifierChars.ReplaceAllString(path, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		return strings.ToLower(method)
	}
	return strings.ToLower(method) + "_" + sanitized
}
