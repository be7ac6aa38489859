package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	evalRequestsTotal     *prometheus.CounterVec
	evalLatencySeconds    *prometheus.HistogramVec
	evalErrorsTotal       *prometheus.CounterVec
	summaryRequestsTotal  *prometheus.CounterVec
	summaryLatencySeconds prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the evaluation API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		evalRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evaluation_requests_total",
			Help: "Total number of evaluation API requests served.",
		}, []string{"method", "route", "status"})

		evalLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evaluation_latency_seconds",
			Help:    "Latency distribution for evaluation API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		evalErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evaluation_errors_total",
			Help: "Total number of error responses returned by evaluation endpoints.",
		}, []string{"method", "route", "status"})

		summaryRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evaluation_summary_requests_total",
			Help: "Course summary computations by cache outcome.",
		}, []string{"outcome"})

		summaryLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "evaluation_summary_latency_seconds",
			Help:    "Latency distribution for course summary assembly.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(evalRequestsTotal, evalLatencySeconds, evalErrorsTotal, summaryRequestsTotal, summaryLatencySeconds)
	})
}

// Requests exposes the counter for evaluation API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return evalRequestsTotal
}

// Latency exposes the latency histogram for evaluation API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return evalLatencySeconds
}

// Errors exposes the counter for evaluation API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return evalErrorsTotal
}

// SummaryRequests exposes the counter for summary computations.
func SummaryRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return summaryRequestsTotal
}

// SummaryLatency exposes the histogram for summary assembly latency.
func SummaryLatency() prometheus.Histogram {
	RegisterMetrics()
	return summaryLatencySeconds
}
