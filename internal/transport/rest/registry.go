package rest

import (
	"context"
	"sync"

	"settlement-quiz/internal/quiz/controller"
)

// session pairs a controller with the mutex that serializes requests for it.
// The controller itself is not concurrency-safe.
type session struct {
	mu   sync.Mutex
	ctrl *controller.Controller
}

// registry holds the live controllers by session id. Sessions evicted from
// memory (restart, LRU in a future revision) are rebuilt from the answer
// store on the next request.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session)}
}

// getOrCreate returns the live session, building a fresh controller when none
// is held in memory.
func (r *registry) getOrCreate(ctx context.Context, id string, build func(context.Context) *controller.Controller) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := &session{ctrl: build(ctx)}
	r.sessions[id] = s
	return s
}
