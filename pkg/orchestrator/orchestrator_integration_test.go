package orchestrator_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
	"github.com/goliatone/go-gatewaygen/pkg/orchestrator"
	"github.com/goliatone/go-gatewaygen/pkg/testsupport"
)

func petstoreSource() pkgopenapi.Source {
	return pkgopenapi.SourceFromFile(filepath.Join("testdata", "petstore.yaml"))
}

func TestOrchestrator_Integration_Ambassador(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()

	result, err := orch.Generate(testsupport.Context(), orchestrator.Request{Source: petstoreSource()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var names []string
	for _, file := range result.Files {
		names = append(names, file.Name)
	}
	wantNames := []string{"PetsApi-mapping.yaml", "StoreApi-mapping.yaml"}
	if diff := testsupport.CompareGolden(wantNames, names); diff != "" {
		t.Fatalf("file names mismatch (-want +got):\n%s", diff)
	}

	for _, file := range result.Files {
		golden := strings.TrimSuffix(file.Name, ".yaml") + ".golden"
		testsupport.AssertGolden(t, filepath.Join("testdata", golden), file.Content)
	}

	if got := len(result.Diagnostics.AtLeast(mapping.SeverityInfo)); got != 0 {
		t.Fatalf("expected no info or warning diagnostics, got %v", result.Diagnostics)
	}
}

func TestOrchestrator_Integration_RoutesRenderer(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()

	result, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Source:   petstoreSource(),
		Renderer: "routes",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(result.Files))
	}
	if result.Files[0].Name != "PetsApi-routes.yaml" {
		t.Fatalf("unexpected file name %q", result.Files[0].Name)
	}
	if !strings.Contains(string(result.Files[0].Content), "operationId: showpetbyid") {
		t.Fatalf("expected showpetbyid route, got:\n%s", result.Files[0].Content)
	}
}
