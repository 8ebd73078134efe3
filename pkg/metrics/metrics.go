// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// DialogTurnsTotal tracks processed dialog turns by the stage that handled them.
	DialogTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turns_total",
			Help: "Total dialog turns processed, labeled by resolving stage",
		},
		[]string{"stage"},
	)

	// SessionsActive tracks sessions currently held by the store.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of dialog sessions currently stored",
		},
	)

	// ItinerariesComposedTotal tracks completed trip plans.
	ItinerariesComposedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itineraries_composed_total",
			Help: "Total itineraries composed",
		},
	)

	// GatewayRequestDuration tracks outbound provider call duration.
	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "External provider request duration",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "status"},
	)

	// GatewayFallbacksTotal tracks how often a gateway operation degraded
	// past its preferred source.
	GatewayFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_fallbacks_total",
			Help: "Total gateway fallbacks by operation",
		},
		[]string{"operation"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordGatewayRequest records metrics for one outbound provider call.
func RecordGatewayRequest(provider, status string, duration float64) {
	GatewayRequestDuration.WithLabelValues(provider, status).Observe(duration)
}

// RecordFallback counts a degraded gateway operation.
func RecordFallback(operation string) {
	GatewayFallbacksTotal.WithLabelValues(operation).Inc()
}
