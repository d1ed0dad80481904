package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksDownloaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcgp_fetch_tasks_downloaded_total",
		Help: "Total number of tasks downloaded",
	})

	TasksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcgp_fetch_tasks_skipped_total",
		Help: "Total number of tasks skipped because the destination already existed",
	})

	TasksNotFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcgp_fetch_tasks_not_found_total",
		Help: "Total number of tasks whose resource does not exist remotely",
	})

	TasksFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcgp_fetch_tasks_failed_total",
		Help: "Total number of tasks failed after exhausting retries",
	})

	AttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcgp_fetch_attempts_total",
		Help: "Total number of fetch attempts",
	})

	AttemptDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tcgp_fetch_attempt_duration_seconds",
		Help:    "Fetch attempt duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	DownloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tcgp_fetch_download_bytes_total",
		Help: "Total bytes downloaded",
	})
)
