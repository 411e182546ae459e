package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seamlabs/codeshift/internal/config"
	"github.com/seamlabs/codeshift/internal/observability"
	"github.com/seamlabs/codeshift/pkg/rewrite"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long: `Run diagnostic checks on the local environment and report anything
that would keep migrations or verification builds from working.

Examples:
  codeshift doctor`,
	Run: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) {
	logger := observability.CLILogger
	logger.Info("=== codeshift doctor ===")
	logger.Info("")
	logger.Info("Running diagnostic checks...")
	logger.Info("")

	allChecks := true
	checkNum := 1
	totalChecks := 5

	// Check 1: Go runtime
	logger.Info(fmt.Sprintf("[%d/%d] Checking Go runtime... ✅ %s", checkNum, totalChecks, runtime.Version()),
		zap.String("go_version", runtime.Version()))
	checkNum++

	// Check 2: configuration
	cfg := config.GetConfig()
	if cfg == nil {
		logger.Error(fmt.Sprintf("[%d/%d] Checking configuration... ❌ not loaded", checkNum, totalChecks))
		allChecks = false
	} else {
		logger.Info(fmt.Sprintf("[%d/%d] Checking configuration... ✅ build tool %q", checkNum, totalChecks, cfg.Build.Tool),
			zap.String("build_tool", cfg.Build.Tool))
	}
	checkNum++

	// Check 3: build tool on PATH
	tool := "mvn"
	if cfg != nil {
		tool = cfg.Build.Tool
	}
	if path, err := exec.LookPath(tool); err != nil {
		logger.Warn(fmt.Sprintf("[%d/%d] Checking build tool... ⚠️  %q not found on PATH", checkNum, totalChecks, tool),
			zap.String("tool", tool))
		logger.Info("         Projects with a wrapper script (mvnw, gradlew) still build.")
		allChecks = false
	} else {
		logger.Info(fmt.Sprintf("[%d/%d] Checking build tool... ✅ %s", checkNum, totalChecks, path),
			zap.String("tool", tool),
			zap.String("path", path))
	}
	checkNum++

	// Check 4: catalog file, when configured
	if cfg != nil && cfg.Engine.CatalogPath != "" {
		if _, err := rewrite.LoadCatalog(cfg.Engine.CatalogPath); err != nil {
			logger.Error(fmt.Sprintf("[%d/%d] Checking catalog... ❌ %v", checkNum, totalChecks, err),
				zap.String("path", cfg.Engine.CatalogPath))
			allChecks = false
		} else {
			logger.Info(fmt.Sprintf("[%d/%d] Checking catalog... ✅ %s", checkNum, totalChecks, cfg.Engine.CatalogPath))
		}
	} else {
		logger.Info(fmt.Sprintf("[%d/%d] Checking catalog... ✅ none configured (built-ins only)", checkNum, totalChecks))
	}
	checkNum++

	// Check 5: config directory
	if configDir, err := os.UserConfigDir(); err != nil {
		logger.Error(fmt.Sprintf("[%d/%d] Checking config directory... ❌ cannot resolve", checkNum, totalChecks),
			zap.Error(err))
		allChecks = false
	} else {
		logger.Info(fmt.Sprintf("[%d/%d] Checking config directory... ✅ %s", checkNum, totalChecks, configDir),
			zap.String("config_dir", configDir))
	}

	logger.Info("")
	if allChecks {
		logger.Info("✅ All checks passed! Your codeshift installation is healthy.")
	} else {
		logger.Warn("⚠️  Some checks failed. Review the output above for details.")
	}
	logger.Info("")
	logger.Info("=== End Diagnostics ===")
}
