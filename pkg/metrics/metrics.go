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

	// TurnsTotal tracks completed conversation turns by classified intent.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_total",
			Help: "Total conversation turns by intent",
		},
		[]string{"intent"},
	)

	// MessagesTotal tracks transcript messages by author.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Total transcript messages appended",
		},
		[]string{"author"},
	)

	// SessionsActive tracks live conversation sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_sessions_active",
			Help: "Number of live conversation sessions",
		},
	)

	// LookupDuration tracks listing store lookup duration.
	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_lookup_duration_seconds",
			Help:    "Listing store lookup duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"channel", "status"},
	)

	// LookupsTotal tracks listing store lookups.
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_lookups_total",
			Help: "Total listing store lookups",
		},
		[]string{"channel", "status"},
	)

	// TypingDelaySeconds tracks the simulated typing delay applied to
	// assistant replies.
	TypingDelaySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_typing_delay_seconds",
			Help:    "Simulated typing delay before assistant replies",
			Buckets: []float64{.5, .75, 1, 1.25, 1.5, 1.75, 2},
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLookup records metrics for one listing store lookup.
func RecordLookup(channel, status string, duration float64) {
	LookupDuration.WithLabelValues(channel, status).Observe(duration)
	LookupsTotal.WithLabelValues(channel, status).Inc()
}
