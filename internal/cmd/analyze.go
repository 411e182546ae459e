package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seamlabs/codeshift/internal/config"
	"github.com/seamlabs/codeshift/internal/observability"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <project-path>",
	Short: "Analyze a project and print its migration profile",
	Long: `Analyze a project's build descriptor and print the detected language
version, frameworks in use, and suggested transformation ids.

Examples:
  codeshift analyze ./my-project
  codeshift analyze ./my-project --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the profile as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if cfg == nil {
		return withExitCode(ExitConfigError, fmt.Errorf("configuration not loaded"))
	}

	facade, err := buildFacade(cfg)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	defer facade.Close()

	profile, err := facade.Analyze(cmd.Context(), args[0])
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	logger := observability.CLILogger
	logger.Info("Detected version: " + profile.Version)
	if len(profile.Frameworks) == 0 {
		logger.Info("Frameworks: none detected")
	} else {
		for _, fw := range profile.Frameworks {
			logger.Info("Framework: " + fw)
		}
	}
	if len(profile.SuggestedIDs) == 0 {
		logger.Info("Suggested transformations: none")
	} else {
		for _, id := range profile.SuggestedIDs {
			logger.Info("Suggested: " + id)
		}
	}
	return nil
}
