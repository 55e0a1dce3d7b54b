package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdf2quiz/backend/internal/grader"
)

// ── Request / Response types ────────────────────────────────────────────────

type GradeQuizRequest struct {
	QuizID    string `json:"quiz_id"`
	AttemptID string `json:"attempt_id"`
}

func (r *GradeQuizRequest) Validate() error {
	if strings.TrimSpace(r.QuizID) == "" {
		return errors.New("quiz_id is required")
	}
	if strings.TrimSpace(r.AttemptID) == "" {
		return errors.New("attempt_id is required")
	}
	return nil
}

type GradeQuizResponse struct {
	Success bool `json:"success"`
	grader.Result
}

type RegradeEntry struct {
	AttemptID  string  `json:"attempt_id"`
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Error      string  `json:"error,omitempty"`
}

type RegradeResponse struct {
	QuizID   string         `json:"quiz_id"`
	Attempts []RegradeEntry `json:"attempts"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// gradeQuiz scores a stored attempt against the quiz's answer key.
// @Summary      Grade an attempt
// @Description  Score an attempt against the quiz's correct options. Unanswered questions count as wrong.
// @Tags         Grading
// @Accept       json
// @Produce      json
// @Param        body  body      GradeQuizRequest  true  "Quiz and attempt to grade"
// @Success      200   {object}  GradeQuizResponse
// @Failure      400   {object}  ErrorResponse  "No answer key available for this quiz"
// @Failure      404   {object}  ErrorResponse  "quiz or attempt not found"
// @Failure      500   {object}  ErrorResponse
// @Router       /api/grade-quiz [post]
func (h *Handler) gradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req GradeQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.quizzes.GradeAttempt(r.Context(), req.QuizID, req.AttemptID)
	if h.handleError(w, r, err, "attempt") {
		return
	}

	respondJSON(w, http.StatusOK, GradeQuizResponse{
		Success: true,
		Result:  *result,
	})
}

// regradeQuiz re-scores every attempt of a quiz.
// @Summary      Regrade every attempt of a quiz
// @Tags         Grading
// @Produce      json
// @Param        quizID  path      string  true  "Quiz ID"
// @Success      200     {object}  RegradeResponse
// @Failure      400     {object}  ErrorResponse  "No answer key available for this quiz"
// @Failure      404     {object}  ErrorResponse  "quiz not found"
// @Failure      500     {object}  ErrorResponse
// @Router       /api/quizzes/{quizID}/regrade [post]
func (h *Handler) regradeQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	grades, err := h.quizzes.RegradeQuiz(r.Context(), quizID)
	if h.handleError(w, r, err, "quiz") {
		return
	}

	entries := make([]RegradeEntry, len(grades))
	for i, g := range grades {
		entries[i] = RegradeEntry{
			AttemptID:  g.AttemptID,
			Score:      g.Score,
			Total:      g.Total,
			Percentage: g.Percentage,
		}
		if g.Err != nil {
			entries[i].Error = g.Err.Error()
		}
	}

	respondJSON(w, http.StatusOK, RegradeResponse{
		QuizID:   quizID,
		Attempts: entries,
	})
}
