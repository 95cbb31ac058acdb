// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuizStepsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_steps_completed_total",
			Help: "Total number of accepted quiz steps by question",
		},
		[]string{"question_id"},
	)

	QuizValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_validation_rejections_total",
			Help: "Total number of step inputs rejected by the validator",
		},
		[]string{"question_id"},
	)

	QuizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Total number of quiz submissions by outcome",
		},
		[]string{"outcome"},
	)

	EstimateFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimate_fallbacks_total",
			Help: "Total number of local-scorer fallbacks by reason",
		},
		[]string{"reason"},
	)

	WebhookRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "webhook_request_duration_seconds",
			Help: "Duration of outbound webhook requests in seconds",
		},
		[]string{"webhook"},
	)

	ContactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions by outcome",
		},
		[]string{"outcome"},
	)

	StorageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "answer_store_failures_total",
			Help: "Total number of degraded answer store operations",
		},
		[]string{"operation"},
	)
)
