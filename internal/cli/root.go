// Package cli implements the vlist command line: browsing record files in the
// windowed table, inspecting column layouts, and managing configuration.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Replaced by setupLogging for each command run.

// runState is what the root pre-run hands to subcommands through the context.
type runState struct {
	cfg *config.Config
	log *logging.LoggerResult
}

type runStateKey struct{}

func withRunState(ctx context.Context, st *runState) context.Context {
	return context.WithValue(ctx, runStateKey{}, st)
}

// stateFrom returns the run state, or defaults when the root pre-run was skipped.
func stateFrom(ctx context.Context) *runState {
	if st, ok := ctx.Value(runStateKey{}).(*runState); ok && st != nil {
		return st
	}
	return &runState{cfg: config.New(), log: &logging.LoggerResult{Logger: zerolog.Nop()}}
}

// NewRootCmd creates the root Cobra command for the vlist CLI.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LoggerResult

	cmd := &cobra.Command{
		Use:           "vlist",
		Short:         "Browse record files in a virtualized terminal table",
		Long:          "vlist: page through large JSON, YAML and NDJSON record sets with a windowed list and adaptive columns",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			configPath, _ := cmd.Flags().GetString("config")
			workDir, err := os.Getwd()
			if err != nil {
				workDir = ""
			}
			cfg, err := config.Load(ctx, config.LoadOptions{Path: configPath, WorkDir: workDir})
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			result := setupLogging(cmd, cfg)
			logResult = &result

			ctx = withRunState(logger.WithContext(ctx), &runState{cfg: cfg, log: logResult})
			cmd.SetContext(ctx)
			logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (YAML or TOML), default $XDG_CONFIG_HOME/vlist/config.yaml")
	cmd.AddCommand(NewBrowseCmd(), NewColumnsCmd(), newConfigCmd(), NewVersionCmd())

	return cmd
}

const rootCmdExample = `  # Browse a JSON array of records
  vlist browse orders.json

  # Browse several NDJSON files keyed by "id", sorted by total descending
  vlist browse --key-field id --sort total:desc logs/*.ndjson

  # Print the table once for a pipe
  vlist browse --plain --width 100 users.yaml | less

  # Show how the columns fit a 60 cell terminal
  vlist columns --width 60 users.yaml

  # Write the default configuration
  vlist config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
