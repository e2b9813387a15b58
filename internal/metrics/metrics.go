// Package metrics holds the Prometheus collectors exported by `smokefree serve`.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks local API latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smokefree_http_request_duration_seconds",
			Help:    "Local API request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// CoachRequests counts AI coach questions by outcome.
	CoachRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smokefree_coach_requests_total",
			Help: "Total number of coach questions",
		},
		[]string{"outcome"}, // outcome: reply, fallback, busy
	)

	// CravingsLogged counts logged cravings.
	CravingsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smokefree_cravings_logged_total",
			Help: "Total number of cravings logged",
		},
		[]string{"type", "overcome"},
	)

	// MilestonesCelebrated counts milestone notifications sent.
	MilestonesCelebrated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smokefree_milestones_celebrated_total",
			Help: "Total number of milestone notifications sent",
		},
	)

	// SmokeFreeDays reports the elapsed days at the last dashboard read.
	SmokeFreeDays = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smokefree_days",
			Help: "Smoke-free days at the last dashboard computation",
		},
	)
)

// RecordHTTPRequestDuration records one local API request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementCoachRequest records the outcome of a coach question.
func IncrementCoachRequest(outcome string) {
	CoachRequests.WithLabelValues(outcome).Inc()
}

// IncrementCravingLogged records a logged craving.
func IncrementCravingLogged(cravingType string, overcome bool) {
	o := "false"
	if overcome {
		o = "true"
	}
	CravingsLogged.WithLabelValues(cravingType, o).Inc()
}
