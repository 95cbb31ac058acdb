// Package store persists in-progress answer sets behind an opaque key-value
// boundary. Implementations must degrade on failure: a failed read behaves as
// an empty read and a failed write as a no-op, so the controller never crashes
// on storage trouble.
package store

import (
	"context"
	"time"

	"settlement-quiz/internal/quiz/answers"

	"github.com/google/uuid"

	"settlement-quiz/internal/common/logger"
)

// Store is the raw key-value boundary.
type Store interface {
	// Get returns the stored value and whether it was present. Failures read
	// as absent.
	Get(ctx context.Context, key string) (string, bool)
	// Set stores a value. Failures are silently dropped after logging.
	Set(ctx context.Context, key, value string)
	// Remove deletes a key. Failures are silently dropped after logging.
	Remove(ctx context.Context, key string)
}

// Sessions retain answers long enough for a visitor to come back, not forever.
const sessionTTL = 30 * 24 * time.Hour

// SessionStore persists per-session answer sets on top of a Store.
type SessionStore struct {
	store     Store
	namespace string
	logger    logger.Logger
}

func NewSessionStore(s Store, namespace string, log logger.Logger) *SessionStore {
	if namespace == "" {
		namespace = "quiz"
	}
	return &SessionStore{store: s, namespace: namespace, logger: log}
}

// NewSessionID mints an opaque session identifier. It carries no meaning
// beyond correlating submissions.
func NewSessionID() string {
	return uuid.NewString()
}

func (s *SessionStore) answersKey(sessionID string) string {
	return s.namespace + ":answers:" + sessionID
}

func (s *SessionStore) sessionKey(sessionID string) string {
	return s.namespace + ":session:" + sessionID
}

// NewSession mints a session id and registers it.
func (s *SessionStore) NewSession(ctx context.Context) string {
	id := NewSessionID()
	s.EnsureSession(ctx, id)
	return id
}

// EnsureSession marks a session id as known.
func (s *SessionStore) EnsureSession(ctx context.Context, sessionID string) {
	s.store.Set(ctx, s.sessionKey(sessionID), "1")
}

// Exists reports whether the session id has been registered.
func (s *SessionStore) Exists(ctx context.Context, sessionID string) bool {
	_, ok := s.store.Get(ctx, s.sessionKey(sessionID))
	return ok
}

// LoadAnswers rehydrates the answer set for a session. A missing entry or an
// undecodable payload both load as an empty set.
func (s *SessionStore) LoadAnswers(ctx context.Context, sessionID string) answers.Set {
	raw, ok := s.store.Get(ctx, s.answersKey(sessionID))
	if !ok {
		return answers.Set{}
	}

	set, err := answers.Decode(raw)
	if err != nil {
		s.logger.Warn("Discarding undecodable stored answer set", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		return answers.Set{}
	}
	return set
}

// SaveAnswers persists the full answer set for a session.
func (s *SessionStore) SaveAnswers(ctx context.Context, sessionID string, set answers.Set) {
	encoded, err := set.Encode()
	if err != nil {
		s.logger.Error("Failed to encode answer set", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		return
	}
	s.store.Set(ctx, s.answersKey(sessionID), encoded)
}

// ClearAnswers removes the stored answer set. The controller does not call
// this implicitly after an estimate; the results flow decides when to clear.
func (s *SessionStore) ClearAnswers(ctx context.Context, sessionID string) {
	s.store.Remove(ctx, s.answersKey(sessionID))
}
