package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the gateway's prometheus instruments.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ConsultasTotal        *prometheus.CounterVec
	UpstreamFailuresTotal *prometheus.CounterVec
}

// NewMetrics registers and returns the gateway instruments on the default
// registry. Call once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		ConsultasTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcu_consultas_total",
				Help: "Total number of BCU consultas by operation",
			},
			[]string{"operation"},
		),

		UpstreamFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcu_upstream_failures_total",
				Help: "Total number of classified upstream failures by error kind",
			},
			[]string{"kind"},
		),
	}
}
