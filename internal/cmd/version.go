package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/seamlabs/codeshift/internal/observability"
	"github.com/seamlabs/codeshift/internal/server/handlers"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		logger := observability.CLILogger
		logger.Info("codeshift " + handlers.Version())
		logger.Info(fmt.Sprintf("go: %s, platform: %s/%s",
			runtime.Version(), runtime.GOOS, runtime.GOARCH))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
