package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seamlabs/codeshift/internal/config"
	"github.com/seamlabs/codeshift/internal/observability"
	"github.com/seamlabs/codeshift/internal/server"
	"github.com/seamlabs/codeshift/internal/server/handlers"
	"github.com/seamlabs/codeshift/pkg/analyze"
	"github.com/seamlabs/codeshift/pkg/rewrite"
	"github.com/seamlabs/codeshift/pkg/tools"
	"github.com/seamlabs/codeshift/pkg/verify"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP tool server",
	Long: `Start the HTTP server exposing the migration tool surface.

Examples:
  codeshift serve                      # Listen on the configured host:port
  codeshift serve --port 9090          # Override the listen port
  CODESHIFT_PORT=9090 codeshift serve  # Same, via environment`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.GetConfig()
	if cfg == nil {
		return withExitCode(ExitConfigError, fmt.Errorf("configuration not loaded"))
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	facade, err := buildFacade(cfg)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	defer facade.Close()

	handlers.InitHealthManager(handlers.Version())
	registerHealthCheckers(cfg)

	srv := server.New(host, port,
		server.WithFacade(facade),
		server.WithMetrics(cfg.Metrics.Enabled),
		server.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return withExitCode(ExitGeneralError, err)
		}
		return nil
	case sig := <-sigCh:
		observability.ServerLogger.Info("signal received, shutting down",
			zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return withExitCode(ExitGeneralError, fmt.Errorf("shutdown: %w", err))
	}
	return nil
}

// buildFacade assembles the tool facade from the effective config.
func buildFacade(cfg *config.Config) (*tools.Facade, error) {
	logger := observability.ServerLogger

	registry := rewrite.DefaultRegistry()
	engine := rewrite.NewLocalEngine(registry, cfg.Engine.SourcePatterns)
	aliases := rewrite.NewAliases(logger)
	allowed := engine.Transformations()

	if cfg.Engine.CatalogPath != "" {
		catalog, err := rewrite.LoadCatalog(cfg.Engine.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog.ApplyTo(aliases)
		allowed = append(allowed, catalog.Allow...)
		logger.Info("transformation catalog loaded",
			zap.String("path", cfg.Engine.CatalogPath),
			zap.Int("aliases", len(catalog.Aliases)),
			zap.Int("allowed", len(catalog.Allow)))
	}

	verifier := verify.New(cfg.Build.Tool, cfg.Build.Args, logger)
	analyzer := analyze.New(analyze.RuleClassifier{}, allowed, logger)

	return tools.New(tools.Options{
		Engine:   engine,
		Aliases:  aliases,
		Verifier: verifier,
		Analyzer: analyzer,
		Logger:   logger,
	}), nil
}

// buildToolChecker reports unhealthy when the configured build tool is not
// on PATH. Projects carrying a wrapper script still build, so a missing
// system tool only matters for the readiness signal.
type buildToolChecker struct {
	tool string
}

func (c buildToolChecker) CheckHealth(_ context.Context) error {
	if _, err := exec.LookPath(c.tool); err != nil {
		return fmt.Errorf("build tool %q not found on PATH", c.tool)
	}
	return nil
}

func registerHealthCheckers(cfg *config.Config) {
	manager := handlers.GetHealthManager()
	if manager == nil {
		return
	}
	manager.RegisterChecker("build-tool", buildToolChecker{tool: cfg.Build.Tool})
}
