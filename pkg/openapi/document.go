package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies where an OpenAPI document originated so loaders can
// operate on files, fs.FS entries, or URLs without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw OpenAPI payload and its origin. By exposing this type
// instead of kin-openapi structs we keep the public API decoupled.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Spec is the deserialized view of a document that the mapping stage
// consumes: the ordered server list, root-level vendor extensions and the
// ordered operation list.
type Spec struct {
	Title      string
	Version    string
	Servers    []string
	Extensions map[string]any
	Operations []Operation
}

// OperationIDs lists the identifiers of every operation in document order.
func (s Spec) OperationIDs() []string {
	ids := make([]string, 0, len(s.Operations))
	for _, op := range s.Operations {
		ids = append(ids, op.ID)
	}
	return ids
}

// Operation models the subset of OpenAPI operation metadata needed to derive
// gateway routes. Path keeps the `{param}` template placeholders verbatim.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Tags       []string
	Summary    string
	Extensions map[string]any
}

// NewOperation validates core fields.
func NewOperation(id, method, path string) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("openapi: operation path is required")
	}

	return Operation{
		ID:     id,
		Method: strings.ToUpper(method),
		Path:   path,
	}, nil
}

// MustNewOperation panics when construction fails, assisting fixtures/tests.
func MustNewOperation(id, method, path string) Operation {
	op, err := NewOperation(id, method, path)
	if err != nil {
		panic(err)
	}
	return op
}

// Extension returns the named vendor extension and whether it was declared.
func (op Operation) Extension(name string) (any, bool) {
	if op.Extensions == nil {
		return nil, false
	}
	value, ok := op.Extensions[name]
	return value, ok
}

// String renders the operation for logging without exposing implementation
// details.
func (op Operation) String() string {
	return fmt.Sprintf("%s %s (%s)", op.Method, op.Path, op.ID)
}
