package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-gatewaygen"
	pkgopenapi "github.com/goliatone/go-gatewaygen/pkg/openapi"
	"github.com/goliatone/go-gatewaygen/pkg/orchestrator"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <spec>...",
		Short: "Check x-ambassador blocks for values generation would ignore",
		Long: `Lint parses each document and reports x-ambassador blocks that are not
mappings, service/namespace/prefix values that are not strings and ignore
flags that are not booleans. The command exits non-zero when any violation
is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.logger("")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			orch := orchestrator.New(
				orchestrator.WithLoader(gatewaygen.NewLoader(pkgopenapi.WithDefaultSources())),
				orchestrator.WithLogger(logger),
			)

			total := 0
			for _, location := range args {
				source, err := pkgopenapi.ParseSource(location)
				if err != nil {
					return err
				}
				violations, err := orch.Lint(cmd.Context(), orchestrator.Request{Source: source})
				if err != nil {
					return fmt.Errorf("lint %s: %w", location, err)
				}
				for _, v := range violations {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", location, v); err != nil {
						return err
					}
				}
				logger.Debug("linted document", zap.String("source", location), zap.Int("violations", len(violations)))
				total += len(violations)
			}
			if total > 0 {
				return fmt.Errorf("%d x-ambassador violation(s) found", total)
			}
			return nil
		},
	}
}
