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

	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of match computations by outcome",
		},
		[]string{"outcome"},
	)

	CandidateCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidate_cache_hits_total",
			Help: "Candidate list cache hits",
		},
	)

	CandidateCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidate_cache_misses_total",
			Help: "Candidate list cache misses",
		},
	)

	CandidateFallbackQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidate_fallback_queries_total",
			Help: "Times the preference filter was dropped to refill a starved candidate pool",
		},
	)
)
