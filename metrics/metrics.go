package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK             = "ok"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeServiceFailure = "service_failure"
)

// Metrics tracks invocation outcomes and completion latency.
//
// Metrics:
//   - process_text_requests_total: invocations by outcome
//   - process_text_completion_duration_seconds: outbound completion call latency
type Metrics struct {
	registry           *prometheus.Registry
	requestsTotal      *prometheus.CounterVec
	completionDuration prometheus.Histogram
}

// New creates the metrics on a private registry, so repeated construction
// in tests never collides with the default registerer.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "process_text",
				Name:      "requests_total",
				Help:      "Total number of invocations by outcome",
			},
			[]string{"outcome"},
		),
		completionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "process_text",
				Name:      "completion_duration_seconds",
				Help:      "Duration of the outbound completion call",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
		),
	}

	m.registry.MustRegister(m.requestsTotal, m.completionDuration)
	for _, outcome := range []string{OutcomeOK, OutcomeInvalidRequest, OutcomeServiceFailure} {
		m.requestsTotal.WithLabelValues(outcome)
	}
	return m
}

func (m *Metrics) RecordRequest(outcome string) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCompletion(d time.Duration) {
	m.completionDuration.Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
