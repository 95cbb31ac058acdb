package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"settlement-quiz/internal/common/logger"
)

// NewRouter wires the quiz API onto a gorilla/mux router.
func NewRouter(c *Container) *mux.Router {
	h := newHandlers(c)

	r := mux.NewRouter()
	r.Use(requestLogger(c.Logger))

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/quiz/questions", h.listQuestions).Methods(http.MethodGet)
	v1.HandleFunc("/quiz/sessions", h.createSession).Methods(http.MethodPost)
	v1.HandleFunc("/quiz/sessions/{id}", h.getSession).Methods(http.MethodGet)
	v1.HandleFunc("/quiz/sessions/{id}/answers", h.submitAnswer).Methods(http.MethodPost)
	v1.HandleFunc("/quiz/sessions/{id}/back", h.goBack).Methods(http.MethodPost)
	v1.HandleFunc("/quiz/sessions/{id}/retry", h.retry).Methods(http.MethodPost)
	v1.HandleFunc("/contact", h.submitContact).Methods(http.MethodPost)

	return r
}

func requestLogger(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("HTTP request", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).String(),
			})
		})
	}
}
