package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	"github.com/goliatone/go-gatewaygen/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) FileSuffix() string  { return "-" + s.name + ".txt" }
func (s stubRenderer) Render(context.Context, render.API, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	registry, err := render.NewRegistry(stubRenderer{name: "routes"}, stubRenderer{name: "ambassador"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"ambassador", "routes"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := registry.Register(stubRenderer{name: "routes"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}

	got, err := registry.Resolve("", "routes")
	if err != nil || got.Name() != "routes" {
		t.Fatalf("fallback resolve = %v, %v", got, err)
	}
	got, err = registry.Resolve("", "missing")
	if err != nil || got.Name() != "ambassador" {
		t.Fatalf("first-name resolve = %v, %v", got, err)
	}
	if _, err := registry.Resolve("missing", "routes"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestAPIHelpers(t *testing.T) {
	api := render.API{
		Name: "PetsApi",
		Entries: []mapping.RouteEntry{
			{OperationID: "a", Resolved: true},
			{OperationID: "b", Resolved: false, Prefix: "/ignored"},
			{OperationID: "c", Resolved: true, Prefix: "/pets"},
		},
	}

	if got := len(api.Resolved()); got != 2 {
		t.Fatalf("resolved = %d, want 2", got)
	}
	if !api.HasPrefix() {
		t.Fatalf("expected prefix")
	}
	if got := render.FileName(stubRenderer{name: "routes"}, api); got != "PetsApi-routes.txt" {
		t.Fatalf("file name = %q", got)
	}
}

func TestCommentHeader(t *testing.T) {
	cases := map[string]string{
		"":                               "",
		"generated by gatewaygen":        "# generated by gatewaygen",
		"# already a comment\n":          "# already a comment",
		"line one\n\n  # kept\nline two": "# line one\n#\n  # kept\n# line two",
	}
	for in, want := range cases {
		if got := render.CommentHeader(in); got != want {
			t.Fatalf("CommentHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
