// Package metrics exposes pipeline and HTTP counters through a dedicated
// Prometheus registry. A nil *Metrics is valid and records nothing, so
// components can be built without an exporter.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	registry         *prometheus.Registry
	stageOutcomes    *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	chatRequests     *prometheus.CounterVec
}

// New creates and registers the collectors under cfg.Namespace.
func New(cfg *config.MetricsConfig) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "stage_outcomes_total",
				Help:      "Pipeline stage completions by stage and status",
			},
			[]string{"stage", "status"},
		),
		pipelineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "pipeline_duration_seconds",
				Help:      "Wall-clock duration of a full pipeline run",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"pipeline"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method and status",
			},
			[]string{"method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "chat_requests_total",
				Help:      "Knowledge-base chat requests by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.stageOutcomes,
		m.pipelineDuration,
		m.httpRequests,
		m.httpDuration,
		m.chatRequests,
	)

	return m
}

// StageOutcome counts one completed stage.
func (m *Metrics) StageOutcome(stage, status string) {
	if m == nil {
		return
	}
	m.stageOutcomes.WithLabelValues(stage, status).Inc()
}

// ObservePipeline records how long a pipeline run took.
func (m *Metrics) ObservePipeline(pipeline string, d time.Duration) {
	if m == nil {
		return
	}
	m.pipelineDuration.WithLabelValues(pipeline).Observe(d.Seconds())
}

// ObserveRequest records a served HTTP request. Its signature matches
// middleware.Observe.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

// ChatRequest counts one chat answer by outcome (answered, awaiting_url, error).
func (m *Metrics) ChatRequest(outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(outcome).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
