package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"love-unlock/internal/domain/unlock"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "love_unlock",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "love_unlock",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	UnlockAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "love_unlock",
			Name:      "unlock_attempts_total",
			Help:      "Unlock submissions by outcome",
		},
		[]string{"outcome"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "love_unlock",
			Name:      "uploads_total",
			Help:      "Template and photo uploads",
		},
		[]string{"kind", "status"},
	)

	CronRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "love_unlock",
			Name:      "cron_runs_total",
			Help:      "Scheduled job executions",
		},
		[]string{"job", "status"},
	)
)

// UnlockRecorder feeds unlock outcomes into UnlockAttemptsTotal.
type UnlockRecorder struct{}

var _ unlock.Recorder = UnlockRecorder{}

func NewUnlockRecorder() UnlockRecorder {
	return UnlockRecorder{}
}

func (UnlockRecorder) UnlockAttempt(outcome string) {
	UnlockAttemptsTotal.WithLabelValues(outcome).Inc()
}
