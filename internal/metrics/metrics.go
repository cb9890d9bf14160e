// Package metrics exposes Prometheus metrics for the HTTP surface, document
// ingestion and conversations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ragcompare"

// Metrics holds the collectors on a private registry. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsTotal *prometheus.CounterVec
	chunksTotal    *prometheus.CounterVec
	chunkLength    *prometheus.HistogramVec

	turnsTotal      *prometheus.CounterVec
	retrievedChunks *prometheus.HistogramVec
	turnDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Number of in-flight HTTP requests.",
			},
		),
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "documents_total",
				Help:      "Uploaded documents by chunking strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
		chunksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "chunks_total",
				Help:      "Chunks stored by chunking strategy.",
			},
			[]string{"strategy"},
		),
		chunkLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "chunk_length_chars",
				Help:      "Distribution of chunk lengths in characters.",
				Buckets:   []float64{50, 100, 250, 500, 1000, 1500, 2000, 4000},
			},
			[]string{"strategy"},
		),
		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rag",
				Name:      "conversation_turns_total",
				Help:      "Conversation turns by stack and outcome.",
			},
			[]string{"stack", "outcome"},
		),
		retrievedChunks: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rag",
				Name:      "retrieved_chunks",
				Help:      "Chunks used as context per conversation turn.",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 15},
			},
			[]string{"stack"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rag",
				Name:      "turn_duration_seconds",
				Help:      "Conversation turn duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stack"},
		),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.documentsTotal,
		m.chunksTotal,
		m.chunkLength,
		m.turnsTotal,
		m.retrievedChunks,
		m.turnDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordDocument records one ingested document and the lengths of its chunks.
func (m *Metrics) RecordDocument(strategy string, chunkLengths []int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case len(chunkLengths) == 0:
		outcome = "empty"
	}
	m.documentsTotal.WithLabelValues(strategy, outcome).Inc()

	m.chunksTotal.WithLabelValues(strategy).Add(float64(len(chunkLengths)))
	hist := m.chunkLength.WithLabelValues(strategy)
	for _, n := range chunkLengths {
		hist.Observe(float64(n))
	}
}

// RecordTurn records one conversation turn.
func (m *Metrics) RecordTurn(stack string, retrieved int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.turnsTotal.WithLabelValues(stack, outcome).Inc()
	if err == nil {
		m.retrievedChunks.WithLabelValues(stack).Observe(float64(retrieved))
	}
	m.turnDuration.WithLabelValues(stack).Observe(duration.Seconds())
}
