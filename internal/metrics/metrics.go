// Package metrics exposes Prometheus instrumentation for the pipeline and
// the HTTP surface. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"umlage/internal/domain"
)

type Metrics struct {
	registry       *prometheus.Registry
	filesTotal     *prometheus.CounterVec
	batchFiles     prometheus.Histogram
	oracleDuration *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_files_total",
			Help: "Total invoice files processed by final status.",
		}, []string{"status"}),
		batchFiles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoice_batch_files",
			Help:    "Number of files per processed batch.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
		oracleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oracle_call_duration_seconds",
			Help:    "Histogram of language-model call durations by call shape and outcome.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"call", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.filesTotal,
		m.batchFiles,
		m.oracleDuration,
		m.httpRequests,
		m.httpDuration,
	)

	for _, s := range domain.AllFileStatuses {
		m.filesTotal.WithLabelValues(string(s))
	}

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) FileProcessed(status domain.FileStatus) {
	if m == nil {
		return
	}
	m.filesTotal.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) BatchProcessed(files int) {
	if m == nil {
		return
	}
	m.batchFiles.Observe(float64(files))
}

func (m *Metrics) OracleCall(call string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.oracleDuration.WithLabelValues(call, outcome).Observe(d.Seconds())
}

func (m *Metrics) HTTPRequest(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, status).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
