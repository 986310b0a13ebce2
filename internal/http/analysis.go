package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	maxRequestBody = 1 << 20 // 1 MiB
	minTitleLength = 2

	msgTitleRequired = "Movie title is required"
	msgTitleTooShort = "Movie title must be at least 2 characters"
)

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type analysisRequest struct {
	Title string `json:"title"`
}

// validateTitle trims title and enforces the search form rules. A non-empty
// message reports why the title was rejected.
func validateTitle(title string) (string, string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", msgTitleRequired
	}
	if utf8.RuneCountInString(trimmed) < minTitleLength {
		return "", msgTitleTooShort
	}
	return trimmed, ""
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	s.analyze(w, r.URL.Query().Get("title"))
}

func (s *Server) handlePostAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	s.analyze(w, req.Title)
}

func (s *Server) analyze(w http.ResponseWriter, rawTitle string) {
	title, msg := validateTitle(rawTitle)
	if msg != "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg)
		return
	}

	analysis := s.analyzer.Resolve(title)
	s.logger.Debug("analysis resolved",
		zap.String("title", title),
		zap.Bool("real", analysis.Real),
		zap.String("sentiment", string(analysis.Sentiment.Type)))
	s.respondJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.dataset.Stats())
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Warn("failed to encode response", zap.Error(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError), errors.Is(err, io.ErrUnexpectedEOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	case errors.As(err, &tooLarge):
		s.respondError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}
