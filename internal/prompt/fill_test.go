package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
)

type fakeDriver struct {
	inputs   map[string]string
	confirm  bool
	selected []int
	err      error

	asked      []string
	selectSeen SelectConfig
}

func (f *fakeDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	if f.err != nil {
		return "", f.err
	}
	value := f.inputs[cfg.Message]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (f *fakeDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	f.asked = append(f.asked, cfg.Message)
	return f.confirm, f.err
}

func (f *fakeDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	f.asked = append(f.asked, cfg.Message)
	f.selectSeen = cfg
	return f.selected, f.err
}

var petstoreIDs = []string{"listPets", "createPets", "showPetById", "deletePet", "getInventory"}

func TestFillConfig_PromptsForMissingValues(t *testing.T) {
	driver := &fakeDriver{
		inputs: map[string]string{
			"Target service (host[:port] or URL)": " petstore:8080 ",
			"Target namespace":                    "",
			"Service prefix (optional)":           "/shop",
		},
		confirm:  true,
		selected: []int{1, 4},
	}

	got, err := FillConfig(context.Background(), driver, mapping.GatewayConfig{
		IgnoreOperationIDs: mapping.NewIgnoreSet("getInventory", "notInDocument"),
	}, mapping.DocumentDefaults{}, petstoreIDs)
	if err != nil {
		t.Fatalf("FillConfig: %v", err)
	}

	want := mapping.GatewayConfig{
		TargetService:      "petstore:8080",
		ServicePrefix:      "/shop",
		OverrideExtensions: true,
		IgnoreOperationIDs: mapping.NewIgnoreSet("createPets", "getInventory", "notInDocument"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4}, driver.selectSeen.Defaults); diff != "" {
		t.Fatalf("preselected ignores mismatch (-want +got):\n%s", diff)
	}
}

func TestFillConfig_SkipsValuesAlreadySet(t *testing.T) {
	driver := &fakeDriver{}
	cfg := mapping.GatewayConfig{
		TargetService:      "petstore:8080",
		TargetNamespace:    "pets",
		ServicePrefix:      "/shop",
		OverrideExtensions: true,
	}

	got, err := FillConfig(context.Background(), driver, cfg, mapping.DocumentDefaults{}, nil)
	if err != nil {
		t.Fatalf("FillConfig: %v", err)
	}
	if len(driver.asked) != 0 {
		t.Fatalf("expected no prompts, got %v", driver.asked)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("config changed (-want +got):\n%s", diff)
	}
}

func TestFillConfig_NoServiceSkipsOverrideQuestion(t *testing.T) {
	driver := &fakeDriver{}

	got, err := FillConfig(context.Background(), driver, mapping.GatewayConfig{}, mapping.DocumentDefaults{}, nil)
	if err != nil {
		t.Fatalf("FillConfig: %v", err)
	}
	want := []string{"Target service (host[:port] or URL)", "Target namespace", "Service prefix (optional)"}
	if diff := cmp.Diff(want, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if got.OverrideExtensions {
		t.Fatal("override should stay off without a target service")
	}
}

func TestFillConfig_PropagatesErrors(t *testing.T) {
	driver := &fakeDriver{err: ErrAborted}
	cfg := mapping.GatewayConfig{TargetNamespace: "pets"}

	got, err := FillConfig(context.Background(), driver, cfg, mapping.DocumentDefaults{}, petstoreIDs)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("config should be returned unchanged on error (-want +got):\n%s", diff)
	}
}

func TestFillConfig_RejectsRelativePrefix(t *testing.T) {
	driver := &fakeDriver{inputs: map[string]string{"Service prefix (optional)": "shop"}}

	if _, err := FillConfig(context.Background(), driver, mapping.GatewayConfig{}, mapping.DocumentDefaults{}, nil); err == nil {
		t.Fatal("expected validation error for prefix without leading slash")
	}
}

func TestIndicesOf(t *testing.T) {
	got := indicesOf([]string{"a", "b", "c"}, []string{"c", "a", "z"})
	if diff := cmp.Diff([]int{0, 2}, got); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices([]string{"a", "b"}, []int{1, 7, -1})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}
