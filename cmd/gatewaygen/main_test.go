package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-gatewaygen/internal/config"
	"github.com/goliatone/go-gatewaygen/internal/logging"
	"github.com/goliatone/go-gatewaygen/internal/prompt"
)

type scriptedDriver struct {
	selected []int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return d.selected, nil
}

func testApp(driver prompt.Driver) *app {
	a := newApp()
	a.newLogger = func(string, logging.Format) (*zap.Logger, error) { return zap.NewNop(), nil }
	if driver != nil {
		a.newDriver = func() prompt.Driver { return driver }
	}
	return a
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	root := newRootCmdWithApp(a)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmdHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"generate", "lint"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Fatalf("find %s subcommand: %v", name, err)
		}
	}
}

func TestGenerate_Stdout(t *testing.T) {
	out, err := execute(t, testApp(nil), "generate", "-s", filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, want := range []string{
		"# PetsApi-mapping.yaml\n---\n",
		"# StoreApi-mapping.yaml\n---\n",
		"name: showpetbyid",
		"service: legacy-pets:9000",
		"prefix: /v1/store/inventory",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "deletepet") {
		t.Fatalf("operation flagged ignore should be left out:\n%s", out)
	}
}

func TestGenerate_OutputDirAndFlags(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, testApp(nil), "generate",
		"--source", filepath.Join("testdata", "petstore.yaml"),
		"--output", dir,
		"--target-service", "https://pets.internal:8443",
		"--target-namespace", "edge",
		"--service-prefix", "/shop",
		"--override-extensions",
		"--ignore-operations", "getInventory, createPets",
		"--label", "team=core",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "StoreApi-mapping.yaml")); !os.IsNotExist(err) {
		t.Fatalf("ignored store operation should not produce a file, stat err %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "PetsApi-mapping.yaml"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"prefix: /shop/v1/pets/.*",
		"namespace: edge",
		"service: https://pets.internal:8443",
		"service: pets\n",
		"team: core",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output:\n%s", want, content)
		}
	}
	if strings.Contains(content, "createpets") || strings.Contains(content, "legacy-pets") {
		t.Fatalf("unexpected content:\n%s", content)
	}
}

func TestGenerate_FlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gatewaygen.yaml")
	spec, err := filepath.Abs(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	content := "source: " + spec + "\nrenderer: routes\ngateway:\n  target_namespace: from-config\n  service_prefix: /cfg\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, testApp(nil), "generate", "--config", configPath, "--target-namespace", "from-flag")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "# PetsApi-routes.yaml") {
		t.Fatalf("expected routes renderer from config file:\n%s", out)
	}
	if !strings.Contains(out, "namespace: from-flag") || strings.Contains(out, "from-config") {
		t.Fatalf("flag should win over config namespace:\n%s", out)
	}
	if !strings.Contains(out, "prefix: /cfg") {
		t.Fatalf("config prefix should apply when the flag is unset:\n%s", out)
	}
}

func TestGenerate_Interactive(t *testing.T) {
	// index 4 is getInventory in declaration order
	driver := &scriptedDriver{selected: []int{4}}

	out, err := execute(t, testApp(driver), "generate", "-s", filepath.Join("testdata", "petstore.yaml"), "--interactive")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(out, "StoreApi") {
		t.Fatalf("operation deselected in the prompt should be ignored:\n%s", out)
	}
	if !strings.Contains(out, "PetsApi-mapping.yaml") {
		t.Fatalf("expected pets output:\n%s", out)
	}
}

func TestGenerate_Errors(t *testing.T) {
	cases := map[string][]string{
		"missing source":       {"generate"},
		"watch and prompt":     {"generate", "-s", "x.yaml", "--watch", "--interactive"},
		"missing file":         {"generate", "-s", filepath.Join("testdata", "missing.yaml")},
		"unknown renderer":     {"generate", "-s", filepath.Join("testdata", "petstore.yaml"), "--renderer", "istio"},
		"unexpected arguments": {"generate", "petstore.yaml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := execute(t, testApp(nil), args...); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

func TestLint(t *testing.T) {
	out, err := execute(t, testApp(nil), "lint", filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("lint clean fixture: %v\n%s", err, out)
	}
	if out != "" {
		t.Fatalf("expected no output for clean fixture, got:\n%s", out)
	}

	bad := filepath.Join("testdata", "bad-extensions.yaml")
	out, err = execute(t, testApp(nil), "lint", bad)
	if err == nil {
		t.Fatal("expected lint to fail on malformed extensions")
	}
	for _, want := range []string{
		bad + ": root: x-ambassador.service must be a string",
		bad + ": GET /things (listThings): x-ambassador.ignore must be a boolean",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWatchPathsIncludePreset(t *testing.T) {
	got := watchPaths("gatewaygen.yaml", config.Config{
		Source: filepath.Join("specs", "petstore.yaml"),
		Preset: "preset.yaml",
	})
	want := []string{"gatewaygen.yaml", filepath.Join("specs", "petstore.yaml"), "preset.yaml"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("watch paths = %v, want %v", got, want)
	}

	remote := watchPaths("", config.Config{Source: "https://example.com/openapi.yaml"})
	if len(remote) != 1 || remote[0] != "" {
		t.Fatalf("remote sources should not be watched, got %v", remote)
	}
}

func TestGenerate_WatchRegeneratesOnPresetChange(t *testing.T) {
	dir := t.TempDir()
	spec, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	specPath := filepath.Join(dir, "petstore.yaml")
	if err := os.WriteFile(specPath, spec, 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	presetPath := filepath.Join(dir, "preset.yaml")
	writePreset := func(namespace string) {
		t.Helper()
		body := "routes:\n  \"*\":\n    namespace: " + namespace + "\n"
		if err := os.WriteFile(presetPath, []byte(body), 0o644); err != nil {
			t.Fatalf("write preset: %v", err)
		}
	}
	writePreset("first")
	outDir := filepath.Join(dir, "out")
	outFile := filepath.Join(outDir, "PetsApi-mapping.yaml")

	a := testApp(nil)
	a.watchDebounce = 20 * time.Millisecond
	root := newRootCmdWithApp(a)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"generate", "-s", specPath, "-o", outDir, "--preset", presetPath, "--watch"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if data, err := os.ReadFile(outFile); err == nil && strings.Contains(string(data), want) {
				return
			}
			select {
			case err := <-done:
				t.Fatalf("generate exited early: %v", err)
			case <-time.After(50 * time.Millisecond):
			}
		}
		t.Fatalf("timed out waiting for %q in %s", want, outFile)
	}

	waitFor("namespace: first")

	// The watcher may start after the first rewrite, so keep touching the
	// preset until the regenerated file shows up.
	deadline := time.Now().Add(10 * time.Second)
	for {
		writePreset("second")
		data, _ := os.ReadFile(outFile)
		if strings.Contains(string(data), "namespace: second") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("preset change was not picked up:\n%s", data)
		}
		time.Sleep(100 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
