package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/arvyn/codelab"
	"github.com/arvyn/codelab/judge"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return false
	}
	return true
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]judge.Language{
		"languages": s.deps.Languages,
	})
}

type executeRequest struct {
	Language             string  `json:"language"`
	SourceCode           string  `json:"source_code"`
	Stdin                string  `json:"stdin"`
	CommandLineArguments string  `json:"command_line_arguments"`
	ExpectedOutput       *string `json:"expected_output"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Language == "" {
		writeError(w, http.StatusBadRequest, "language is required.")
		return
	}

	result, err := s.deps.Executor.Execute(r.Context(), judge.ExecRequest{
		Language:             req.Language,
		SourceCode:           req.SourceCode,
		Stdin:                req.Stdin,
		CommandLineArguments: req.CommandLineArguments,
		ExpectedOutput:       req.ExpectedOutput,
	})
	if err != nil {
		s.logger.Error("execution failed",
			"request_id", requestID(r.Context()),
			"language", req.Language,
			"error", err,
		)
		writeError(w, executeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// executeStatus maps executor errors onto HTTP statuses: caller mistakes
// are 400, everything that went wrong on the far side is 502.
func executeStatus(err error) int {
	var invalid *judge.ErrInvalidInput
	var unsupported *judge.ErrUnsupportedLanguage
	switch {
	case errors.As(err, &invalid), errors.As(err, &unsupported):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

type curriculumRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) handleCurriculum(w http.ResponseWriter, r *http.Request) {
	var req curriculumRequest
	if !decodeBody(w, r, &req) {
		return
	}
	raw, err := s.deps.Tutor.Curriculum(r.Context(), req.Topic)
	if err != nil {
		s.writeLLMError(w, r, "curriculum", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{
		"curriculum": answerPayload(raw),
	})
}

type lessonRequest struct {
	Concept string `json:"concept"`
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	answer, err := s.deps.Tutor.Lesson(r.Context(), req.Concept)
	if err != nil {
		s.writeLLMError(w, r, "lesson", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lesson": answer})
}

type feedbackRequest struct {
	Topic string `json:"topic"`
	Code  string `json:"code"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	answer, err := s.deps.Tutor.Feedback(r.Context(), req.Topic, req.Code)
	if err != nil {
		s.writeLLMError(w, r, "feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": answer})
}

func (s *Server) writeLLMError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error("tutor request failed",
		"request_id", requestID(r.Context()),
		"operation", op,
		"error", err,
	)
	var llmErr *codelab.ErrLLM
	var httpErr *codelab.ErrHTTP
	if errors.As(err, &llmErr) || errors.As(err, &httpErr) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// answerPayload embeds model output that is already JSON verbatim, and
// wraps anything else as a JSON string so the response stays well formed.
func answerPayload(raw string) json.RawMessage {
	trimmed := []byte(raw)
	if json.Valid(trimmed) && len(trimmed) > 0 {
		return trimmed
	}
	quoted, _ := json.Marshal(raw)
	return quoted
}
