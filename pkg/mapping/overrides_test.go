package mapping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOverrides(t *testing.T) {
	got := ParseOverrides(map[string]any{
		"service":    "users:8080",
		"namespace":  nil,
		"prefix":     "",
		"ignore":     true,
		"timeout_ms": float64(3000),
		"weight":     float64(10),
	})

	if got.Service != "users:8080" || !got.Has(FieldService) {
		t.Fatalf("service = %q (declared %v)", got.Service, got.Has(FieldService))
	}
	if got.Has(FieldNamespace) {
		t.Fatalf("null namespace should count as absent")
	}
	if !got.Has(FieldPrefix) || got.Prefix != "" {
		t.Fatalf("empty prefix should be declared")
	}
	if !got.Ignore || !got.Has(FieldIgnore) {
		t.Fatalf("ignore flag not parsed")
	}
	if diff := cmp.Diff([]string{"timeout_ms", "weight"}, got.ExtraKeys()); diff != "" {
		t.Fatalf("extra keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOverridesStringifiesScalars(t *testing.T) {
	got := ParseOverrides(map[string]any{"service": float64(8080), "ignore": "yes"})
	if got.Service != "8080" {
		t.Fatalf("service = %q, want 8080", got.Service)
	}
	if got.Ignore {
		t.Fatalf("non-boolean ignore must not suppress")
	}
}

func TestWithDoesNotShareDeclaredState(t *testing.T) {
	base := VendorOverrides{}.With(FieldService, "a")
	derived := base.With(FieldNamespace, "b")
	if base.Has(FieldNamespace) {
		t.Fatalf("With mutated the receiver")
	}
	if !derived.Has(FieldService) || !derived.Has(FieldNamespace) {
		t.Fatalf("derived overrides lost declarations")
	}
}

func TestParseOverridesDropsReservedKeys(t *testing.T) {
	got := ParseOverrides(map[string]any{
		"service":      "users:8080",
		"method":       "POST",
		"prefix_regex": false,
		"rewrite":      "/",
	})

	if diff := cmp.Diff([]string{"rewrite"}, got.ExtraKeys()); diff != "" {
		t.Fatalf("extra keys mismatch (-want +got):\n%s", diff)
	}
}
