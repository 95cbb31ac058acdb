// Package controller implements the step-by-step quiz state machine: it walks
// the visible question list, applies the validator, persists answers after
// each accepted step, and submits the completed set for estimation.
package controller

import (
	"context"

	"settlement-quiz/internal/clients/estimate"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/common/metrics"
	"settlement-quiz/internal/quiz/analytics"
	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/catalog"
	"settlement-quiz/internal/quiz/score"
	"settlement-quiz/internal/quiz/store"
	"settlement-quiz/internal/quiz/validate"
)

// State is the controller's lifecycle phase.
type State string

const (
	StatePresenting State = "presenting"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Estimator resolves a completed submission to an estimate.
type Estimator interface {
	Submit(ctx context.Context, sub estimate.Submission) (*score.Estimate, error)
}

// Options configures a Controller.
type Options struct {
	SessionID string
	Catalog   []catalog.Question // defaults to catalog.Questions
	Store     *store.SessionStore
	Estimator Estimator
	Logger    logger.Logger
	Tracker   *analytics.Tracker
	Meta      estimate.Meta
}

// Controller drives one quiz session. It is not safe for concurrent use; the
// transport serializes access per session, matching the single-user,
// single-tab interaction model.
type Controller struct {
	sessionID string
	catalog   []catalog.Question
	store     *store.SessionStore
	estimator Estimator
	logger    logger.Logger
	tracker   *analytics.Tracker
	meta      estimate.Meta

	state     State
	stepIndex int
	answers   answers.Set
	message   string
	estimate  *score.Estimate
}

// New starts a session at the first step, rehydrating any answers the store
// holds for it.
func New(ctx context.Context, opts Options) *Controller {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Questions
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	c := &Controller{
		sessionID: opts.SessionID,
		catalog:   cat,
		store:     opts.Store,
		estimator: opts.Estimator,
		logger:    log,
		tracker:   opts.Tracker,
		meta:      opts.Meta,
		state:     StatePresenting,
		answers:   answers.Set{},
	}

	if c.store != nil {
		c.answers = c.store.LoadAnswers(ctx, c.sessionID)
	}
	c.track(analytics.EventStartQuiz, map[string]interface{}{
		"resumed": len(c.answers) > 0,
	})

	return c
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	return c.state
}

// ValidationMessage returns the inline error for the current step, if any.
func (c *Controller) ValidationMessage() string {
	return c.message
}

// Estimate returns the terminal estimate once the session has succeeded.
func (c *Controller) Estimate() *score.Estimate {
	return c.estimate
}

// Answers returns the answer set accumulated so far.
func (c *Controller) Answers() answers.Set {
	return c.answers
}

// Current returns the question at the present step together with any answer
// already recorded for it, so back/forward navigation pre-populates input.
// ok is false outside the presenting state.
func (c *Controller) Current() (catalog.Question, answers.Value, bool) {
	if c.state != StatePresenting {
		return catalog.Question{}, answers.Value{}, false
	}
	visible := c.visible()
	if len(visible) == 0 {
		return catalog.Question{}, answers.Value{}, false
	}
	c.clamp(visible)
	q := visible[c.stepIndex]
	return q, c.answers[q.ID], true
}

// Progress reports the 1-based step position and the total count of the
// currently visible list. Both can change when an earlier answer changes.
func (c *Controller) Progress() (step, total int) {
	visible := c.visible()
	c.clamp(visible)
	return c.stepIndex + 1, len(visible)
}

// Back moves to the previous step. The answer already recorded for the current
// step is kept; any validation error is cleared.
func (c *Controller) Back() {
	if c.state != StatePresenting || c.stepIndex == 0 {
		return
	}
	c.stepIndex--
	c.message = ""
}

// Next validates the input for the current step. On rejection the controller
// stays put and surfaces the message. On acceptance the answer is recorded and
// persisted; the controller then either advances or, when this was the last
// visible step, submits the full answer set.
func (c *Controller) Next(ctx context.Context, value answers.Value) validate.Result {
	if c.state != StatePresenting {
		return validate.Result{Accepted: false, Message: "Quiz is no longer accepting answers"}
	}

	visible := c.visible()
	if len(visible) == 0 {
		return validate.Result{Accepted: false, Message: "No questions to answer"}
	}
	c.clamp(visible)
	q := visible[c.stepIndex]

	result := validate.Validate(q, value, c.answers)
	if !result.Accepted {
		metrics.QuizValidationRejections.WithLabelValues(q.ID).Inc()
		c.message = result.Message
		return result
	}

	c.answers = c.answers.With(q.ID, value)
	if c.store != nil {
		c.store.SaveAnswers(ctx, c.sessionID, c.answers)
	}
	c.message = ""

	metrics.QuizStepsCompleted.WithLabelValues(q.ID).Inc()

	// Visibility is re-derived from the updated answers: an edited early
	// answer may have changed both the step count and which question is last.
	fresh := c.visible()
	c.track(analytics.EventCompletedStep, map[string]interface{}{
		"questionId": q.ID,
		"step":       c.stepIndex + 1,
		"total":      len(fresh),
	})

	if c.stepIndex >= len(fresh)-1 {
		c.submit(ctx)
	} else {
		c.stepIndex++
	}
	return result
}

// Retry resubmits the same answer set without revalidation. It is only legal
// from the failed state.
func (c *Controller) Retry(ctx context.Context) {
	if c.state != StateFailed {
		return
	}
	c.submit(ctx)
}

func (c *Controller) submit(ctx context.Context) {
	c.state = StateSubmitting
	c.track(analytics.EventSubmitted, map[string]interface{}{
		"sessionId": c.sessionID,
	})

	sub := estimate.NewSubmission(c.sessionID, c.answers, c.meta)
	est, err := c.estimator.Submit(ctx, sub)
	if err != nil {
		c.state = StateFailed
		metrics.QuizSubmissions.WithLabelValues("failed").Inc()
		c.track(analytics.EventErrorOccurred, map[string]interface{}{
			"sessionId": c.sessionID,
			"error":     err.Error(),
		})
		c.logger.Error("Estimate submission failed", map[string]interface{}{
			"sessionId": c.sessionID,
			"error":     err.Error(),
		})
		return
	}

	c.state = StateSucceeded
	c.estimate = est
	metrics.QuizSubmissions.WithLabelValues("succeeded").Inc()
	c.track(analytics.EventReceivedEstimate, map[string]interface{}{
		"sessionId": c.sessionID,
		"source":    string(est.Source),
	})
}

func (c *Controller) visible() []catalog.Question {
	return catalog.Visible(c.catalog, c.answers)
}

// clamp keeps the step index inside the visible list after an answer change
// shrinks it.
func (c *Controller) clamp(visible []catalog.Question) {
	if len(visible) == 0 {
		c.stepIndex = 0
		return
	}
	if c.stepIndex >= len(visible) {
		c.stepIndex = len(visible) - 1
	}
}

func (c *Controller) track(event analytics.Event, data map[string]interface{}) {
	if c.tracker != nil {
		c.tracker.Track(event, data)
	}
}
