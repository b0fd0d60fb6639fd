package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-gatewaygen"
	"github.com/goliatone/go-gatewaygen/internal/config"
	"github.com/goliatone/go-gatewaygen/internal/prompt"
	"github.com/goliatone/go-gatewaygen/pkg/mapping"
	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
	"github.com/goliatone/go-gatewaygen/pkg/orchestrator"
)

type generateFlags struct {
	source             string
	output             string
	targetService      string
	targetNamespace    string
	servicePrefix      string
	ignoreOperations   string
	overrideExtensions bool
	renderer           string
	configPath         string
	preset             string
	header             string
	labels             map[string]string
	includeUnresolved  bool
	watch              bool
	interactive        bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate gateway mappings for an OpenAPI document",
		Long: `Generate writes one file per API tag. Flags that are set explicitly win
over the config file, which wins over the document's root x-ambassador block.
Without --output the files are written to stdout as one YAML stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.source, "source", "s", "", "OpenAPI document path or http(s) URL")
	flags.StringVarP(&f.output, "output", "o", "", "output directory (stdout when empty)")
	flags.StringVar(&f.targetService, "target-service", "", "service every mapping routes to, host[:port] or URL")
	flags.StringVar(&f.targetNamespace, "target-namespace", "", fmt.Sprintf("namespace for the mappings (default %q when nothing else sets one)", mapping.DefaultNamespace))
	flags.StringVar(&f.servicePrefix, "service-prefix", "", "path prefix prepended to every mapping")
	flags.StringVar(&f.ignoreOperations, "ignore-operations", "", "comma-separated operation ids to leave out")
	flags.BoolVar(&f.overrideExtensions, "override-extensions", false, "let the target values replace x-ambassador values on operations")
	flags.StringVar(&f.renderer, "renderer", "", "output renderer: ambassador or routes")
	flags.StringVar(&f.configPath, "config", "", "YAML config file")
	flags.StringVar(&f.preset, "preset", "", "YAML preset with per-route patches")
	flags.StringVar(&f.header, "header", "", "comment written at the top of every file")
	flags.StringToStringVar(&f.labels, "label", nil, "extra metadata label key=value (repeatable)")
	flags.BoolVar(&f.includeUnresolved, "include-unresolved", false, "note operations without a target service in the output")
	flags.BoolVar(&f.watch, "watch", false, "regenerate when the document or config file changes")
	flags.BoolVar(&f.interactive, "interactive", false, "prompt for unset gateway values and operations to ignore")
	return cmd
}

// resolveSettings layers explicitly set flags over the config file.
func resolveSettings(cmd *cobra.Command, a *app, f *generateFlags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.NewLoader().Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	setString := func(name string, dst *string, value string) {
		if changed(name) {
			*dst = value
		}
	}
	setString("source", &cfg.Source, f.source)
	setString("output", &cfg.Output, f.output)
	setString("renderer", &cfg.Renderer, f.renderer)
	setString("preset", &cfg.Preset, f.preset)
	setString("log-level", &cfg.LogLevel, a.logLevel)
	setString("target-service", &cfg.Gateway.TargetService, f.targetService)
	setString("target-namespace", &cfg.Gateway.TargetNamespace, f.targetNamespace)
	setString("service-prefix", &cfg.Gateway.ServicePrefix, f.servicePrefix)
	setString("header", &cfg.Render.Header, f.header)

	if changed("ignore-operations") {
		cfg.Gateway.IgnoreOperations = config.ParseIgnoreList(f.ignoreOperations)
	}
	if changed("override-extensions") {
		cfg.Gateway.OverrideExtensions = f.overrideExtensions
	}
	if changed("include-unresolved") {
		cfg.Render.IncludeUnresolved = f.includeUnresolved
	}
	if changed("label") {
		labels := make(map[string]string, len(cfg.Render.Labels)+len(f.labels))
		for key, value := range cfg.Render.Labels {
			labels[key] = value
		}
		for key, value := range f.labels {
			labels[key] = value
		}
		cfg.Render.Labels = labels
	}

	if cfg.Source == "" {
		return config.Config{}, errors.New("a source is required: pass --source or set source in the config file")
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, a *app, f *generateFlags) error {
	if f.watch && f.interactive {
		return errors.New("--watch and --interactive cannot be combined")
	}

	settings, err := resolveSettings(cmd, a, f)
	if err != nil {
		return err
	}
	logger, err := a.logger(settings.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	var driver prompt.Driver
	if f.interactive {
		driver = a.newDriver()
	}
	if err := generateOnce(ctx, cmd.OutOrStdout(), logger, settings, driver); err != nil {
		return err
	}
	if !f.watch {
		return nil
	}
	return watch(ctx, cmd, a, f, logger, settings)
}

func generateOnce(ctx context.Context, stdout io.Writer, logger *zap.Logger, settings config.Config, driver prompt.Driver) error {
	source, err := pkgopenapi.ParseSource(settings.Source)
	if err != nil {
		return err
	}
	doc, err := gatewaygen.NewLoader(pkgopenapi.WithDefaultSources()).Load(ctx, source)
	if err != nil {
		return err
	}

	options := []orchestrator.Option{orchestrator.WithLogger(logger)}
	if settings.Preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(settings.Preset)), filepath.Base(settings.Preset))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithEntryTransformer(preset))
	}
	orch := orchestrator.New(options...)

	req := orchestrator.Request{
		Document:      &doc,
		Config:        settings.GatewayConfig(),
		Renderer:      settings.Renderer,
		RenderOptions: settings.RenderOptions(),
	}

	if driver != nil {
		spec, err := orch.Inspect(ctx, req)
		if err != nil {
			return err
		}
		defaults, _ := mapping.ResolveDefaults(spec)
		filled, err := prompt.FillConfig(ctx, driver, req.Config, defaults, spec.OperationIDs())
		if err != nil {
			return err
		}
		req.Config = filled
	}

	result, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	if len(result.Files) == 0 {
		logger.Warn("document has no operations to render", zap.String("source", settings.Source))
		return nil
	}
	return writeResult(stdout, settings.Output, result, logger)
}

func writeResult(stdout io.Writer, dir string, result orchestrator.Result, logger *zap.Logger) error {
	if dir == "" {
		for _, file := range result.Files {
			if _, err := fmt.Fprintf(stdout, "# %s\n", file.Name); err != nil {
				return err
			}
			if !bytes.HasPrefix(file.Content, []byte("---")) {
				if _, err := io.WriteString(stdout, "---\n"); err != nil {
					return err
				}
			}
			if _, err := stdout.Write(file.Content); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, file := range result.Files {
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, file.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("wrote mapping file", zap.String("path", path), zap.Int("bytes", len(file.Content)))
	}
	return nil
}

// watch regenerates on every settled change until the context is cancelled.
// Settings are re-read on each run so config edits apply, but the set of
// watched files is fixed at start.
func watch(ctx context.Context, cmd *cobra.Command, a *app, f *generateFlags, logger *zap.Logger, settings config.Config) error {
	paths := watchPaths(f.configPath, settings)
	w, err := config.NewWatcher(paths, config.WithWatcherLogger(logger), config.WithDebounce(a.watchDebounce))
	if err != nil {
		return err
	}
	w.OnChange(func([]string) {
		next, err := resolveSettings(cmd, a, f)
		if err != nil {
			logger.Error("reload settings failed", zap.Error(err))
			return
		}
		if err := generateOnce(ctx, cmd.OutOrStdout(), logger, next, nil); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
		}
	})
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return err
	}
	logger.Info("watching for changes", zap.Strings("files", paths))

	<-ctx.Done()
	return w.Stop()
}

// watchPaths lists the local files a generation run depends on: the config
// file, the OpenAPI document when it is a file, and the preset.
func watchPaths(configPath string, settings config.Config) []string {
	paths := []string{configPath}
	if source, err := pkgopenapi.ParseSource(settings.Source); err == nil && source.Kind() == pkgopenapi.SourceKindFile {
		paths = append(paths, source.Location())
	}
	if settings.Preset != "" {
		paths = append(paths, settings.Preset)
	}
	return paths
}
