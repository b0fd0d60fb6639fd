package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-gatewaygen/internal/logging"
	"github.com/goliatone/go-gatewaygen/internal/prompt"
)

// app carries the process-wide settings shared by sub-commands. Tests swap
// the factories to avoid real terminals and stderr logging.
type app struct {
	logLevel  string
	logFormat string

	newLogger func(level string, format logging.Format) (*zap.Logger, error)
	newDriver func() prompt.Driver

	// watchDebounce overrides config.DefaultDebounce when set.
	watchDebounce time.Duration
}

func newApp() *app {
	return &app{
		newLogger: logging.New,
		newDriver: func() prompt.Driver { return prompt.NewSurveyDriver() },
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithApp(newApp())
}

func newRootCmdWithApp(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gatewaygen",
		Short: "Generate API gateway mappings from OpenAPI documents",
		Long: `gatewaygen reads an OpenAPI 3 document and emits gateway routing
configuration, by default one Ambassador Mapping per operation grouped into
one YAML file per tag. Routing hints come from command line flags, a config
file and x-ambassador blocks in the document.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", string(logging.FormatConsole), "log format: console or json")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newLintCmd(a))
	return root
}

func (a *app) logger(level string) (*zap.Logger, error) {
	if level == "" {
		level = a.logLevel
	}
	return a.newLogger(level, logging.Format(a.logFormat))
}
