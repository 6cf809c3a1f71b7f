package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"foodgram/internal/pkg/config"
)

// Job run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// WorkerMetrics embeds the configuration metrics and adds per-run job metrics.
type WorkerMetrics struct {
	*config.ConfigMetrics

	JobRunsTotal       *prometheus.CounterVec
	JobDurationSeconds prometheus.Histogram
	JobLastSuccess     prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics on reg.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	f := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker", reg),

		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_stats_job_runs_total",
			Help: "Stats job runs by status (success/failure)",
		}, []string{"status"}),

		// COUNT(*) 4本なので通常は1秒未満
		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_stats_job_duration_seconds",
			Help:    "Duration of one stats collection in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
		}),

		JobLastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_stats_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful stats collection",
		}),
	}
}

// RecordJobRun records the outcome and duration of one run.
func (m *WorkerMetrics) RecordJobRun(status string, d time.Duration) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(d.Seconds())
	if status == StatusSuccess {
		m.JobLastSuccess.SetToCurrentTime()
	}
}
