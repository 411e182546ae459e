// Package telemetry exposes prometheus metrics for the job supervisor.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// JobsSubmitted counts job submissions by kind.
	JobsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codeshift_jobs_submitted_total",
		Help: "Background jobs submitted, by kind.",
	}, []string{"kind"})

	// JobsCompleted counts terminal records by kind and status.
	JobsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codeshift_jobs_completed_total",
		Help: "Background jobs reaching a terminal state, by kind and status.",
	}, []string{"kind", "status"})

	// JobsInFlight tracks jobs between submission and terminal record.
	JobsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "codeshift_jobs_in_flight",
		Help: "Jobs submitted but not yet terminal, by kind.",
	}, []string{"kind"})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
