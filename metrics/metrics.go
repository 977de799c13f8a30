// Package metrics provides Prometheus metrics for the Wikipedia MCP server.
// It tracks tool calls, upstream Wikipedia API calls and HTTP transport traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "wikipedia_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// WikipediaAPILatency measures Wikipedia API call latency by action
	WikipediaAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wikipedia_api_latency_seconds",
		Help:      "Wikipedia API call latency by action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	// WikipediaAPIRequestsTotal counts Wikipedia API requests
	WikipediaAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wikipedia_api_requests_total",
		Help:      "Total Wikipedia API requests by action and status",
	}, []string{"action", "status"})

	// WikipediaAPIErrors counts Wikipedia API errors by error kind
	WikipediaAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wikipedia_api_errors_total",
		Help:      "Wikipedia API errors by action and error kind",
	}, []string{"action", "error_kind"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// ContentSize tracks extract sizes returned to callers
	ContentSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "content_size_bytes",
		Help:      "Extract size distribution in bytes",
		Buckets:   []float64{100, 1000, 10000, 50000, 100000, 250000, 500000, 1000000},
	}, []string{"operation"})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	RequestsTotal.WithLabelValues(tool, statusLabel(success)).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Wikipedia API call. errorKind is empty on success.
func RecordAPICall(action string, duration float64, success bool, errorKind string) {
	WikipediaAPIRequestsTotal.WithLabelValues(action, statusLabel(success)).Inc()
	WikipediaAPILatency.WithLabelValues(action).Observe(duration)
	if errorKind != "" {
		WikipediaAPIErrors.WithLabelValues(action, errorKind).Inc()
	}
}

// RecordContentSize records the size of an extract handed back to a caller
func RecordContentSize(operation string, size int) {
	ContentSize.WithLabelValues(operation).Observe(float64(size))
}

// RecordHTTPRequest records one request served by the HTTP transport
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
