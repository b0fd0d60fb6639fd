package mapping

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gatewaygen/pkg/openapi"
)

func TestLint(t *testing.T) {
	bad := openapi.MustNewOperation("bad", "GET", "/bad")
	bad.Extensions = map[string]any{ExtensionKey: map[string]any{
		"service": float64(8080),
		"ignore":  "true",
		"custom":  []any{"ok"},
	}}
	scalar := openapi.MustNewOperation("scalar", "POST", "/scalar")
	scalar.Extensions = map[string]any{ExtensionKey: "svc"}
	good := openapi.MustNewOperation("good", "GET", "/good")
	good.Extensions = map[string]any{ExtensionKey: map[string]any{"service": "svc", "ignore": false}}

	spec := openapi.Spec{
		Extensions: map[string]any{ExtensionKey: map[string]any{"namespace": true}},
		Operations: []openapi.Operation{bad, scalar, good},
	}

	var got []string
	for _, v := range Lint(spec) {
		got = append(got, v.String())
	}
	want := []string{
		"root: x-ambassador.namespace must be a string, got bool",
		"GET /bad (bad): x-ambassador.ignore must be a boolean, got string",
		"GET /bad (bad): x-ambassador.service must be a string, got float64",
		"POST /scalar (scalar): x-ambassador must be a mapping, got string",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLintSkipsNullsAndReportsReservedKeys(t *testing.T) {
	op := openapi.MustNewOperation("nulls", "GET", "/nulls")
	op.Extensions = map[string]any{ExtensionKey: map[string]any{
		"service":      nil,
		"ignore":       nil,
		"prefix_regex": false,
		"timeout_ms":   float64(100),
	}}

	var got []string
	for _, v := range Lint(openapi.Spec{Operations: []openapi.Operation{op}}) {
		got = append(got, v.String())
	}
	want := []string{"GET /nulls (nulls): x-ambassador.prefix_regex is reserved and ignored"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	if _, declared := OverridesFromExtensions(op.Extensions); !declared {
		t.Fatalf("block should still be read by the transformer")
	}
}
