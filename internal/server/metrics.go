package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics exported by the service
type Metrics struct {
	// ValidationsTotal counts validator runs by validator and outcome
	// (pass, fail)
	ValidationsTotal *prometheus.CounterVec

	// MatchCount observes how many matches a validator or match request
	// produced
	MatchCount *prometheus.HistogramVec

	// RequestDuration observes request latency by route and status
	RequestDuration *prometheus.HistogramVec

	RequestsInFlight prometheus.Gauge
}

// NewMetrics creates and registers all metrics. A nil registry uses
// prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banlist_validations_total",
				Help: "Total number of validator runs",
			},
			[]string{"validator", "outcome"},
		),

		MatchCount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "banlist_matches",
				Help:    "Number of matches found per validation",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"validator"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "banlist_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"route", "status"},
		),

		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "banlist_requests_in_flight",
				Help: "Number of requests currently being processed",
			},
		),
	}
}

// metricsHandler serves the metrics in gatherer
func metricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
