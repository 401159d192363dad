package lifecycle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for settled requests.
const (
	outcomeSuccess = "success"
	outcomeFail    = "fail"
)

// Metrics provides Prometheus metrics for the request lifecycle. A nil
// *Metrics disables collection; all methods are nil-safe and safe for
// concurrent use.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestsInFlight  *prometheus.GaugeVec
	deduplicatedTotal *prometheus.CounterVec
	skippedTotal      *prometheus.CounterVec
}

// NewMetrics creates a collector on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a collector using the supplied registerer.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fluxkit_requests_total",
				Help: "Total number of async requests settled",
			},
			[]string{"type", "outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fluxkit_request_duration_seconds",
				Help:    "Duration of async requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type", "outcome"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fluxkit_requests_in_flight",
				Help: "Number of async requests currently in flight",
			},
			[]string{"type"},
		),
		deduplicatedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fluxkit_deduplicated_requests_total",
				Help: "Total number of dispatches that shared an in-flight request call",
			},
			[]string{"type"},
		),
		skippedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fluxkit_skipped_requests_total",
				Help: "Total number of requests suppressed by their predicate",
			},
			[]string{"type"},
		),
	}
}

func (m *Metrics) observeStart(actionType string) {
	if m == nil {
		return
	}
	m.requestsInFlight.WithLabelValues(actionType).Inc()
}

func (m *Metrics) observeSettled(actionType, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsInFlight.WithLabelValues(actionType).Dec()
	m.requestsTotal.WithLabelValues(actionType, outcome).Inc()
	m.requestDuration.WithLabelValues(actionType, outcome).Observe(duration.Seconds())
}

func (m *Metrics) observeDeduplicated(actionType string) {
	if m == nil {
		return
	}
	m.deduplicatedTotal.WithLabelValues(actionType).Inc()
}

func (m *Metrics) observeSkipped(actionType string) {
	if m == nil {
		return
	}
	m.skippedTotal.WithLabelValues(actionType).Inc()
}
