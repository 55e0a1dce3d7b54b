// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pdf2quiz/backend/internal/ai"
	"github.com/pdf2quiz/backend/internal/pdftext"
	"github.com/pdf2quiz/backend/internal/service"
	"github.com/pdf2quiz/backend/internal/store"
	"github.com/pdf2quiz/backend/internal/structurer"
)

// maxUploadSize caps multipart PDF uploads.
const maxUploadSize = pdftext.MaxDownloadSize

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	quizzes *service.QuizService
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(quizzes *service.QuizService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		quizzes: quizzes,
		logger:  logger,
	}
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, ErrorResponse{Detail: detail})
}

// decodeJSON decodes the request body into v. It writes a 400 and returns
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleError maps service errors onto HTTP responses. Returns true if an
// error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, entity string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, pdftext.ErrNoText):
		respondError(w, http.StatusBadRequest, "Could not extract text from PDF. The PDF might be image-based.")
	case errors.Is(err, pdftext.ErrNotPDF):
		respondError(w, http.StatusBadRequest, "Uploaded file is not a PDF")
	case errors.Is(err, service.ErrEmptySource):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, structurer.ErrStructuringFailed):
		h.logger.Warn("structuring failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusBadRequest, "AI could not parse questions from the text")
	case errors.Is(err, structurer.ErrAnswerKeyUnavailable):
		respondError(w, http.StatusBadRequest, "Could not parse answer key from PDF")
	case errors.Is(err, service.ErrNoAnswerKey):
		respondError(w, http.StatusBadRequest, "No answer key available for this quiz")
	case errors.Is(err, ai.ErrAllProvidersExhausted):
		h.logger.Error("all AI providers failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusBadGateway, "All AI providers failed. Please try again later.")
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
