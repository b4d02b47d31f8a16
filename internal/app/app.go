// Package app is the HTTP layer in front of the judge client and the tutor.
// It owns request parsing, error-to-status mapping, and request logging;
// everything else is delegated.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/arvyn/codelab/judge"
	"github.com/arvyn/codelab/tutor"
)

// Deps are the collaborators the HTTP layer fronts.
type Deps struct {
	Executor  judge.Executor
	Languages []judge.Language
	Tutor     *tutor.Tutor
	Logger    *slog.Logger
}

// Server serves the JSON API.
type Server struct {
	deps   Deps
	logger *slog.Logger
}

// New creates a Server. A nil Logger falls back to slog.Default().
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{deps: deps, logger: logger}
}

// Handler returns the API routes wrapped in the request-id/logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/languages", s.handleLanguages)
	mux.HandleFunc("POST /api/execute", s.handleExecute)
	mux.HandleFunc("POST /api/curriculum", s.handleCurriculum)
	mux.HandleFunc("POST /api/lesson", s.handleLesson)
	mux.HandleFunc("POST /api/feedback", s.handleFeedback)
	mux.HandleFunc("GET /health", handleHealth)
	return s.withRequestLog(mux)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID returns the id the middleware attached to ctx, or "".
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
