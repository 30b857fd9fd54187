package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the relay pipeline
type Metrics struct {
	// Task metrics
	TasksTotal    *prometheus.CounterVec
	TasksInFlight prometheus.Gauge
	TaskDuration  prometheus.Histogram

	// Fetch metrics
	FetchDuration   prometheus.Histogram
	FetchErrors     *prometheus.CounterVec
	DownloadedBytes *prometheus.CounterVec
	AssetsSkipped   *prometheus.CounterVec

	// Normalization metrics
	NormalizeSteps prometheus.Histogram

	// Delivery metrics
	UploadsTotal      *prometheus.CounterVec
	GroupFallbacks    prometheus.Counter
	TempFilesReleased prometheus.Counter
}

var (
	// DefaultMetrics is the metrics instance registered on the default registry
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TasksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_tasks_total",
				Help: "Total number of link messages handled, by outcome",
			},
			[]string{"outcome"},
		),
		TasksInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relay_tasks_in_flight",
			Help: "Number of link messages currently being processed",
		}),
		TaskDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_task_duration_seconds",
			Help:    "End-to-end duration of a link message task",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),

		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_fetch_duration_seconds",
			Help:    "Duration of fetching all assets for one link",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		FetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_fetch_errors_total",
				Help: "Total number of failed fetches, by error type",
			},
			[]string{"error_type"},
		),
		DownloadedBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_downloaded_bytes_total",
				Help: "Bytes streamed from media hosts, by asset kind",
			},
			[]string{"kind"},
		),
		AssetsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_assets_skipped_total",
				Help: "Assets dropped during fetch, by asset kind",
			},
			[]string{"kind"},
		),

		NormalizeSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_normalize_steps",
			Help:    "Number of lossy re-encode iterations per oversized image",
			Buckets: prometheus.LinearBuckets(1, 1, 8),
		}),

		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_uploads_total",
				Help: "Upload calls to the chat platform, by media kind and result",
			},
			[]string{"kind", "result"},
		),
		GroupFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_group_fallbacks_total",
			Help: "Media groups re-sent item by item after a rejected batch upload",
		}),
		TempFilesReleased: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_temp_files_released_total",
			Help: "Temporary upload files removed from disk",
		}),
	}
}
