// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ESignEnvelopesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esign_envelopes_submitted_total",
			Help: "Envelope create requests sent to the eSignature API, by outcome",
		},
		[]string{"status"},
	)

	ESignRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "esign_request_duration_seconds",
			Help:    "Latency of eSignature API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
