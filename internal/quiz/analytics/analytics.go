// Package analytics tracks the funnel events the marketing side reports on.
// Events are logged structurally and counted; no third-party collector is
// called from this process.
package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"settlement-quiz/internal/common/logger"
)

// Event is one of the fixed funnel event names.
type Event string

const (
	EventStartQuiz        Event = "start_quiz"
	EventCompletedStep    Event = "completed_step"
	EventSubmitted        Event = "submitted"
	EventReceivedEstimate Event = "received_estimate"
	EventErrorOccurred    Event = "error_occurred"
	EventContactSubmitted Event = "contact_submitted"
)

var eventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quiz_funnel_events_total",
		Help: "Total number of funnel events by event name",
	},
	[]string{"event"},
)

// Tracker records funnel events.
type Tracker struct {
	logger logger.Logger
}

func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{logger: log}
}

// Track logs and counts one event. Data keys are free-form event context.
func (t *Tracker) Track(event Event, data map[string]interface{}) {
	eventsTotal.WithLabelValues(string(event)).Inc()

	fields := map[string]interface{}{"event": string(event)}
	for k, v := range data {
		fields[k] = v
	}
	t.logger.Info("analytics", fields)
}
