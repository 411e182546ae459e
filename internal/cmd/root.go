// Package cmd implements the codeshift command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seamlabs/codeshift/internal/config"
	"github.com/seamlabs/codeshift/internal/observability"
	"github.com/seamlabs/codeshift/internal/server/handlers"
)

// Process exit codes surfaced to scripts.
const (
	ExitOK            = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitExternalError = 4
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "codeshift",
	Short: "Source migration tooling with asynchronous job tracking",
	Long: `codeshift analyzes Java projects, applies migration transformations,
and verifies the result with a dry-run build. Long-running operations run
as supervised jobs whose status can be polled.

Examples:
  codeshift serve                              # Start the HTTP tool server
  codeshift analyze ./my-project               # Print the migration profile
  codeshift recipes list                       # List available transformations
  codeshift doctor                             # Check the local environment`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		overrides := map[string]any{}
		if flagLogLevel != "" {
			overrides["logging"] = map[string]any{"level": flagLogLevel}
		}
		if flagLogFormat != "" {
			logging, _ := overrides["logging"].(map[string]any)
			if logging == nil {
				logging = map[string]any{}
			}
			logging["format"] = flagLogFormat
			overrides["logging"] = logging
		}

		cfg, err := config.LoadFrom(cmd.Context(), flagConfig, overrides)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		observability.Init(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Server log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ./codeshift.yaml)")
}

// SetVersionInfo records build metadata injected via -ldflags.
func SetVersionInfo(version, commit, buildDate string) {
	handlers.SetVersionInfo(version, commit, buildDate)
	rootCmd.Version = handlers.Version()
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	defer observability.Sync()

	if err := rootCmd.Execute(); err != nil {
		observability.CLILogger.Error("command failed", zap.Error(err))
		return exitCodeFor(err)
	}
	return ExitOK
}

// exitCode lets subcommands signal a specific code through the error
// chain.
type exitCode struct {
	code int
	err  error
}

func (e exitCode) Error() string { return e.err.Error() }
func (e exitCode) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return exitCode{code: code, err: err}
}

func exitCodeFor(err error) int {
	if ec, ok := err.(exitCode); ok {
		return ec.code
	}
	return ExitGeneralError
}
