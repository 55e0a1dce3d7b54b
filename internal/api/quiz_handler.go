package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuizRequest struct {
	Title string `json:"title"`
}

type QuizResponse struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Status         quiz.Status `json:"status"`
	TotalQuestions int         `json:"total_questions"`
	CreatedAt      time.Time   `json:"created_at"`
}

type StoredQuestionResponse struct {
	ID             string                 `json:"id"`
	QuestionNumber int                    `json:"question_number"`
	QuestionText   string                 `json:"question_text"`
	Options        map[quiz.Option]string `json:"options"`
	CorrectOption  *quiz.Option           `json:"correct_option"`
}

type CreateAttemptRequest struct {
	Answers map[string]string `json:"answers"`
}

type AttemptResponse struct {
	ID        string         `json:"id"`
	QuizID    string         `json:"quiz_id"`
	Answers   quiz.AnswerMap `json:"answers"`
	Score     *int           `json:"score"`
	IsGraded  bool           `json:"is_graded"`
	CreatedAt time.Time      `json:"created_at"`
}

func toQuizResponse(q *quiz.Quiz) QuizResponse {
	return QuizResponse{
		ID:             q.ID,
		Title:          q.Title,
		Status:         q.Status,
		TotalQuestions: q.TotalQuestions,
		CreatedAt:      q.CreatedAt,
	}
}

func toQuestionResponses(questions []store.StoredQuestion) []StoredQuestionResponse {
	out := make([]StoredQuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = StoredQuestionResponse{
			ID:             q.ID,
			QuestionNumber: q.QuestionNumber,
			QuestionText:   q.QuestionText,
			Options:        q.Options,
			CorrectOption:  q.CorrectOption,
		}
	}
	return out
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createQuiz creates an empty quiz in draft status.
// @Summary      Create a quiz
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Param        body  body      CreateQuizRequest  true  "Quiz to create"
// @Success      201   {object}  QuizResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/quizzes [post]
func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req CreateQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.quizzes.CreateQuiz(r.Context(), req.Title)
	if h.handleError(w, r, err, "quiz") {
		return
	}

	respondJSON(w, http.StatusCreated, toQuizResponse(q))
}

// @Summary      Get a quiz
// @Tags         Quizzes
// @Produce      json
// @Param        quizID  path      string  true  "Quiz ID"
// @Success      200     {object}  QuizResponse
// @Failure      404     {object}  ErrorResponse  "quiz not found"
// @Router       /api/quizzes/{quizID} [get]
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.quizzes.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
	if h.handleError(w, r, err, "quiz") {
		return
	}

	respondJSON(w, http.StatusOK, toQuizResponse(q))
}

// @Summary      List the questions of a quiz
// @Tags         Quizzes
// @Produce      json
// @Param        quizID  path      string  true  "Quiz ID"
// @Success      200     {array}   StoredQuestionResponse
// @Failure      404     {object}  ErrorResponse  "quiz not found"
// @Router       /api/quizzes/{quizID}/questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizzes.ListQuestions(r.Context(), chi.URLParam(r, "quizID"))
	if h.handleError(w, r, err, "quiz") {
		return
	}

	respondJSON(w, http.StatusOK, toQuestionResponses(questions))
}

// createAttempt stores a user's chosen options for later grading.
// @Summary      Submit an attempt
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Param        quizID  path      string                true  "Quiz ID"
// @Param        body    body      CreateAttemptRequest  true  "Chosen options by question number"
// @Success      201     {object}  AttemptResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse  "quiz not found"
// @Router       /api/quizzes/{quizID}/attempts [post]
func (h *Handler) createAttempt(w http.ResponseWriter, r *http.Request) {
	var req CreateAttemptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.quizzes.CreateAttempt(r.Context(), chi.URLParam(r, "quizID"), quiz.SanitizeAnswers(req.Answers))
	if h.handleError(w, r, err, "quiz") {
		return
	}

	respondJSON(w, http.StatusCreated, AttemptResponse{
		ID:        a.ID,
		QuizID:    a.QuizID,
		Answers:   a.Answers,
		Score:     a.Score,
		IsGraded:  a.IsGraded,
		CreatedAt: a.CreatedAt,
	})
}
