package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
)

const minimalDocument = "openapi: 3.0.0\ninfo: {title: t, version: '1'}\npaths: {}\n"

func TestLoaderLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	if err := os.WriteFile(path, []byte(minimalDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := New(pkgopenapi.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != minimalDocument {
		t.Fatalf("raw payload mismatch: %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("location = %q, want %q", doc.Location(), path)
	}
}

func TestLoaderLoadsFromFS(t *testing.T) {
	files := fstest.MapFS{
		"specs/api.yaml": &fstest.MapFile{Data: []byte(minimalDocument)},
	}
	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml")); err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing fs entry")
	}
}

func TestLoaderHTTPDisabledByDefault(t *testing.T) {
	loader := New(pkgopenapi.NewLoaderOptions())
	_, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL("https://example.com/spec.yaml"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoaderLoadsHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(minimalDocument))
	}))
	defer server.Close()

	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/spec.yaml"))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if string(doc.Raw()) != minimalDocument {
		t.Fatalf("raw payload mismatch: %q", doc.Raw())
	}

	if _, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := New(pkgopenapi.NewLoaderOptions())
	if _, err := loader.Load(ctx, pkgopenapi.SourceFromFile("spec.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
