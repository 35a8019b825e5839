// Package metrics provides Prometheus metrics collection for HTTP requests
// and Bedrock agent invocations.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skillpath-labs/lms-backend/pkg/logger"
)

const (
	subsystem = "lms"
)

// Metrics provides Prometheus metrics collection for HTTP requests and agent invocations.
type Metrics struct {
	reg *prometheus.Registry

	TotalHTTPRequestsCounter prometheus.Counter
	HTTPRequestsCounters     map[int]prometheus.Counter
	HTTPDurationHistogram    prometheus.Histogram

	AgentInvocationsCounter      *prometheus.CounterVec
	AgentInvocationErrorsCounter *prometheus.CounterVec
	AgentDurationHistogram       *prometheus.HistogramVec

	customMetrics []prometheus.Collector

	server  *http.Server
	errChan chan error
	log     logger.Logger
}

// NewMetrics creates a new Metrics instance with the specified collectors enabled.
func NewMetrics(httpMetrics, agentMetrics bool, l logger.Logger) Metrics {
	m := Metrics{
		reg: prometheus.NewRegistry(),
		log: l,
	}
	if httpMetrics {
		m.TotalHTTPRequestsCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "total_http_requests",
			Help:      "Total HTTP requests",
		})
		m.reg.MustRegister(m.TotalHTTPRequestsCounter)
		m.HTTPRequestsCounters = make(map[int]prometheus.Counter)

		m.HTTPDurationHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.3, 0.5, 0.7, 1.0, 3.0, 5.0, 7.0, 10.0},
		})
		m.reg.MustRegister(m.HTTPDurationHistogram)
	}
	if agentMetrics {
		m.AgentInvocationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "total_agent_invocations",
			Help:      "Total Bedrock agent invocations",
		}, []string{"agent"})
		m.reg.MustRegister(m.AgentInvocationsCounter)

		m.AgentInvocationErrorsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "total_agent_invocation_errors",
			Help:      "Total failed Bedrock agent invocations",
		}, []string{"agent"})
		m.reg.MustRegister(m.AgentInvocationErrorsCounter)

		// Agent calls are slow compared to plain HTTP handling, so the buckets skew large.
		m.AgentDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "agent_invocation_duration_seconds",
			Help:      "Bedrock agent invocation duration in seconds",
			Buckets:   []float64{0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 30.0, 60.0},
		}, []string{"agent"})
		m.reg.MustRegister(m.AgentDurationHistogram)
	}
	return m
}

// Listen starts the metrics HTTP server on the specified port. Errors are
// reported on ErrChan; Stop shuts the server down.
func (m *Metrics) Listen(port int) {
	m.log.Info("Starting metrics listener", logger.IntField("port", port))
	mux := http.NewServeMux()
	mux.Handle("/", http.NotFoundHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- m.server.ListenAndServe()
	}()
	m.errChan = errChan
}

// ErrChan returns the error channel of a running metrics listener, or nil if
// Listen was never called.
func (m *Metrics) ErrChan() chan error {
	return m.errChan
}

// Stop gracefully shuts down the metrics HTTP server if it is running.
func (m *Metrics) Stop() {
	if m.server == nil {
		return
	}
	m.log.Info("Stopping metrics listener")
	_ = m.server.Shutdown(context.Background())
}

// ObserveAgentInvocation records the outcome of a single agent invocation.
// A nil err counts as a success; the duration is recorded either way.
func (m *Metrics) ObserveAgentInvocation(agent string, duration time.Duration, err error) {
	if m.AgentInvocationsCounter == nil {
		return
	}
	m.AgentInvocationsCounter.WithLabelValues(agent).Inc()
	m.AgentDurationHistogram.WithLabelValues(agent).Observe(duration.Seconds())
	if err != nil {
		m.AgentInvocationErrorsCounter.WithLabelValues(agent).Inc()
	}
}

// AddCustomMetric registers a custom Prometheus collector.
func (m *Metrics) AddCustomMetric(c prometheus.Collector) {
	m.customMetrics = append(m.customMetrics, c)
	m.reg.MustRegister(m.customMetrics[len(m.customMetrics)-1])
}

// IncrementHTTPResponseCounter increments the counter for the given HTTP status code.
// It is a no-op when HTTP metrics are disabled.
func (m *Metrics) IncrementHTTPResponseCounter(code int) {
	if m.HTTPRequestsCounters == nil {
		return
	}
	_, ok := m.HTTPRequestsCounters[code]
	if !ok {
		m.HTTPRequestsCounters[code] = newTotalHTTPReqMetric(code)
		m.reg.MustRegister(m.HTTPRequestsCounters[code])
	}
	m.HTTPRequestsCounters[code].Inc()
}

func newTotalHTTPReqMetric(code int) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      fmt.Sprintf("total_%d_http_responses", code),
		Help:      fmt.Sprintf("Total %s HTTP responses returned", http.StatusText(code)),
	})
}

// HTTPMiddleware returns a Chi-compatible middleware that tracks HTTP metrics.
// When HTTP metrics are disabled the middleware passes requests through
// untouched, so it can be mounted unconditionally.
func (m *Metrics) HTTPMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m.TotalHTTPRequestsCounter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.TotalHTTPRequestsCounter.Inc()

			rw := &responseWriter{ResponseWriter: w, statusCode: 200}
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			m.HTTPDurationHistogram.Observe(duration.Seconds())
			m.IncrementHTTPResponseCounter(rw.statusCode)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
