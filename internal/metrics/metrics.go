package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// NLP capability metrics
	NLPBatchesTotal      prometheus.CounterVec
	NLPBatchRetriesTotal prometheus.CounterVec

	// Dataset metrics
	DatasetBuildsTotal     prometheus.CounterVec
	DatasetBuildDuration   prometheus.HistogramVec
	DatasetEventsLoaded    prometheus.GaugeVec
	FilterOperationsTotal  prometheus.CounterVec
	AnalysisRequestsTotal  prometheus.CounterVec
	AnalysisRequestSeconds prometheus.HistogramVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			NLPBatchesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nlp_batches_total",
					Help: "Completed NLP capability batches",
				},
				[]string{"operation"},
			),
			NLPBatchRetriesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nlp_batch_retries_total",
					Help: "NLP batches retried with a reduced batch size after resource exhaustion",
				},
				[]string{"operation"},
			),
			DatasetBuildsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "dataset_builds_total",
					Help: "Dataset constructions by outcome",
				},
				[]string{"outcome"},
			),
			DatasetBuildDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "dataset_build_duration_seconds",
					Help:    "Time to normalize and enrich an uploaded dataset",
					Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
				},
				[]string{"outcome"},
			),
			DatasetEventsLoaded: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "dataset_events_loaded",
					Help: "Events in the active working view",
				},
				[]string{"state"}, // "pristine" or "view"
			),
			FilterOperationsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "filter_operations_total",
					Help: "Working-view filter operations by kind",
				},
				[]string{"kind"},
			),
			AnalysisRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "analysis_requests_total",
					Help: "Aggregation requests by kind",
				},
				[]string{"kind"},
			),
			AnalysisRequestSeconds: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "analysis_request_duration_seconds",
					Help:    "Aggregation computation latency in seconds",
					Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
				},
				[]string{"kind"},
			),
			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Errors by component",
				},
				[]string{"component"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it if needed
func Get() *Metrics {
	return Initialize()
}
