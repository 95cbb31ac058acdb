package rest

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"net/http"

	"github.com/gorilla/mux"

	"settlement-quiz/internal/clients/contact"
	"settlement-quiz/internal/clients/estimate"
	"settlement-quiz/internal/common/errors"
	"settlement-quiz/internal/quiz/analytics"
	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/catalog"
	"settlement-quiz/internal/quiz/controller"
	"settlement-quiz/internal/quiz/score"
)

// handlers binds the Container to the HTTP surface.
type handlers struct {
	c        *Container
	registry *registry
}

func newHandlers(c *Container) *handlers {
	return &handlers{c: c, registry: newRegistry()}
}

// stateResponse is the session snapshot every quiz endpoint returns.
type stateResponse struct {
	SessionID         string            `json:"sessionId"`
	State             string            `json:"state"`
	Step              int               `json:"step"`
	TotalSteps        int               `json:"totalSteps"`
	Question          *catalog.Question `json:"question,omitempty"`
	Answer            *answers.Value    `json:"answer,omitempty"`
	ValidationMessage string            `json:"validationMessage,omitempty"`
	Estimate          *score.Estimate   `json:"estimate,omitempty"`
}

func (h *handlers) snapshot(sessionID string, ctrl *controller.Controller) stateResponse {
	step, total := ctrl.Progress()
	resp := stateResponse{
		SessionID:         sessionID,
		State:             string(ctrl.State()),
		Step:              step,
		TotalSteps:        total,
		ValidationMessage: ctrl.ValidationMessage(),
		Estimate:          ctrl.Estimate(),
	}
	if q, ans, ok := ctrl.Current(); ok {
		resp.Question = &q
		if !ans.IsZero() {
			resp.Answer = &ans
		}
	}
	return resp
}

func (h *handlers) buildController(sessionID string, r *http.Request) func(context.Context) *controller.Controller {
	meta := estimate.Meta{
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
		Path:      r.URL.Path,
	}
	return func(ctx context.Context) *controller.Controller {
		return controller.New(ctx, controller.Options{
			SessionID: sessionID,
			Catalog:   h.c.Catalog,
			Store:     h.c.Sessions,
			Estimator: h.c.Estimator,
			Logger:    h.c.Logger,
			Tracker:   h.c.Tracker,
			Meta:      meta,
		})
	}
}

func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := h.c.Sessions.NewSession(ctx)

	s := h.registry.getOrCreate(ctx, id, h.buildController(id, r))
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusCreated, h.snapshot(id, s.ctrl))
}

func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, id string, s *session) {
		writeJSON(w, http.StatusOK, h.snapshot(id, s.ctrl))
	})
}

type answerRequest struct {
	Value answers.Value `json:"value"`
}

func (h *handlers) submitAnswer(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, id string, s *session) {
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.NewAnswerValidationFailedError("", "Request body is not a valid answer"))
			return
		}

		// Rejections ride in the snapshot as validationMessage; the session
		// itself stays valid, so this is a 200 either way.
		s.ctrl.Next(ctx, req.Value)
		writeJSON(w, http.StatusOK, h.snapshot(id, s.ctrl))
	})
}

func (h *handlers) goBack(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, id string, s *session) {
		s.ctrl.Back()
		writeJSON(w, http.StatusOK, h.snapshot(id, s.ctrl))
	})
}

func (h *handlers) retry(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, id string, s *session) {
		s.ctrl.Retry(ctx)
		writeJSON(w, http.StatusOK, h.snapshot(id, s.ctrl))
	})
}

// withSession resolves the path session id, rebuilding the controller from the
// answer store when the process no longer holds it in memory, and runs fn with
// the per-session lock held.
func (h *handlers) withSession(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string, s *session)) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if !h.c.Sessions.Exists(ctx, id) {
		writeError(w, errors.NewSessionNotFoundError(id))
		return
	}

	s := h.registry.getOrCreate(ctx, id, h.buildController(id, r))
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(ctx, id, s)
}

func (h *handlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": h.c.Catalog,
		"states":    catalog.USStates,
	})
}

func (h *handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var form contact.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, errors.NewContactInvalidError("Request body is not a valid contact form"))
		return
	}

	if err := h.c.Contact.Submit(r.Context(), form); err != nil {
		writeError(w, err)
		return
	}

	if h.c.Tracker != nil {
		h.c.Tracker.Track(analytics.EventContactSubmitted, map[string]interface{}{
			"sessionId": form.SessionID,
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a StandardError to an HTTP status and serializes it as the
// response body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.ErrCodeAnswerValidationFailed, errors.ErrCodeUnknownQuestion, errors.ErrCodeContactInvalid:
		status = http.StatusBadRequest
	case errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeContactSendFailed, errors.ErrCodeEstimateTimeout,
		errors.ErrCodeEstimateTransportFailed, errors.ErrCodeEstimateResponseInvalid:
		status = http.StatusBadGateway
	}

	var stdErr *errors.StandardError
	if !goerrors.As(err, &stdErr) {
		stdErr = &errors.StandardError{
			Code:    "UNKNOWN",
			Message: err.Error(),
		}
	}
	writeJSON(w, status, map[string]interface{}{"error": stdErr})
}
