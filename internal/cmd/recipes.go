package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/seamlabs/codeshift/internal/config"
	"github.com/seamlabs/codeshift/internal/observability"
)

var recipesJSON bool

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Work with the transformation catalog",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available transformation ids",
	Long: `List the transformation ids the engine can apply, including catalog
extensions when a catalog file is configured. Deprecated aliases are shown
with the canonical id they resolve to.

Examples:
  codeshift recipes list
  codeshift recipes list --json`,
	RunE: runRecipesList,
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	recipesCmd.AddCommand(recipesListCmd)
	recipesListCmd.Flags().BoolVar(&recipesJSON, "json", false, "Print the listing as JSON")
}

func runRecipesList(_ *cobra.Command, _ []string) error {
	cfg := config.GetConfig()
	if cfg == nil {
		return withExitCode(ExitConfigError, fmt.Errorf("configuration not loaded"))
	}

	facade, err := buildFacade(cfg)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	defer facade.Close()

	ids := facade.Transformations()
	aliases := facade.Aliases()

	if recipesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Transformations []string          `json:"transformations"`
			Aliases         map[string]string `json:"aliases"`
		}{Transformations: ids, Aliases: aliases})
	}

	logger := observability.CLILogger
	for _, id := range ids {
		logger.Info(id)
	}
	if len(aliases) > 0 {
		logger.Info("")
		logger.Info("Deprecated aliases:")
		for _, from := range sortedKeys(aliases) {
			logger.Info("  " + from + " -> " + aliases[from])
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
