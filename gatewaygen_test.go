package gatewaygen_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-gatewaygen"
	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
)

func TestGenerate_IgnoreList(t *testing.T) {
	source := pkgopenapi.SourceFromFile(filepath.Join("internal", "openapi", "testdata", "petstore.yaml"))

	result, err := gatewaygen.Generate(context.Background(), source, gatewaygen.GatewayConfig{
		IgnoreOperationIDs: mapping.NewIgnoreSet("getInventory"),
	}, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Name != "PetsApi-mapping.yaml" {
		t.Fatalf("expected only the pets file, got %+v", result.APIs)
	}
}

func TestGenerateFromDocument_RoutesRenderer(t *testing.T) {
	raw := []byte(`openapi: 3.0.0
info: {title: Inline, version: "1"}
x-ambassador: {service: "inline:80"}
paths:
  /ping:
    get:
      operationId: Ping
      tags: [ops]
      responses:
        "200": {description: ok}
`)
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("inline.yaml"), raw)

	result, err := gatewaygen.GenerateFromDocument(context.Background(), doc, gatewaygen.GatewayConfig{}, "routes")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.APIs) != 1 || result.APIs[0].Name != "OpsApi" {
		t.Fatalf("unexpected apis %+v", result.APIs)
	}
	entry := result.APIs[0].Entries[0]
	if entry.OperationID != "ping" || entry.ServiceName != "inline" || entry.Namespace != mapping.DefaultNamespace {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"mapping.tpl", "mapping-with-prefix.tpl"} {
		if _, err := fs.Stat(gatewaygen.EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected embedded template %s: %v", name, err)
		}
	}
}
