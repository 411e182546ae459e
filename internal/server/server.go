// Package server assembles the HTTP surface: router, middleware chain,
// and endpoint registration. Lifecycle is Start then Shutdown; the caller
// owns signal handling.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/seamlabs/codeshift/internal/errors"
	"github.com/seamlabs/codeshift/internal/observability"
	"github.com/seamlabs/codeshift/internal/server/handlers"
	"github.com/seamlabs/codeshift/internal/server/middleware"
	"github.com/seamlabs/codeshift/internal/telemetry"
	"github.com/seamlabs/codeshift/pkg/tools"
)

// Server is the HTTP tool server.
type Server struct {
	host   string
	port   int
	router *chi.Mux
	http   *http.Server

	facade         *tools.Facade
	metricsEnabled bool
	rateLimit      float64
	rateBurst      int
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

// Option adjusts server construction.
type Option func(*Server)

// WithFacade mounts the tool endpoints backed by f. Without it only the
// health, version, and metrics endpoints are served.
func WithFacade(f *tools.Facade) Option {
	return func(s *Server) { s.facade = f }
}

// WithMetrics toggles the Prometheus endpoint.
func WithMetrics(enabled bool) Option {
	return func(s *Server) { s.metricsEnabled = enabled }
}

// WithRateLimit bounds the request rate. Zero rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) { s.rateLimit = rps; s.rateBurst = burst }
}

// WithTimeouts sets the HTTP server timeouts.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
		s.idleTimeout = idle
	}
}

// New builds a server listening on host:port.
func New(host string, port int, opts ...Option) *Server {
	s := &Server{
		host:         host,
		port:         port,
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		idleTimeout:  120 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}
	return s
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(s.rateLimit, s.rateBurst))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteHTTPError(w, apperrors.CodeNotFound,
			"resource not found: "+r.URL.Path,
			middleware.GetRequestID(r), nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteHTTPError(w, apperrors.CodeMethodNotAllow,
			"method "+r.Method+" not allowed for "+r.URL.Path,
			middleware.GetRequestID(r), nil)
	})

	r.Get("/health", handlers.HealthHandler)
	r.Get("/health/live", handlers.LivenessHandler)
	r.Get("/health/ready", handlers.ReadinessHandler)
	r.Get("/health/startup", handlers.StartupHandler)
	r.Get("/version", handlers.VersionHandler)

	if s.metricsEnabled {
		r.Method(http.MethodGet, "/metrics", telemetry.Handler())
	}

	if s.facade != nil {
		r.Route("/tools", handlers.NewTools(s.facade).Routes)
	}

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured listen port.
func (s *Server) Port() int {
	return s.port
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	observability.ServerLogger.Info("server listening",
		zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.ServerLogger.Info("server shutting down")
	return s.http.Shutdown(ctx)
}
