// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/grader"
	"github.com/pdf2quiz/backend/internal/store"
	"github.com/pdf2quiz/backend/internal/structurer"
	"github.com/pdf2quiz/backend/internal/worker"
)

var (
	ErrNoAnswerKey = errors.New("no answer key available for this quiz")
	ErrEmptySource = errors.New("either a PDF URL or a PDF file is required")
)

// TextExtractor turns a PDF into plain text. *pdftext.Extractor satisfies it.
type TextExtractor interface {
	FromBytes(data []byte) (string, error)
	FromURL(ctx context.Context, url string) (string, error)
}

// Source is a PDF given either inline or by URL. Data wins when both are set.
type Source struct {
	URL  string
	Data []byte
}

// ImportResult is returned after a question PDF has been parsed and saved.
type ImportResult struct {
	QuizID    string
	Status    quiz.Status
	Questions []quiz.Question
}

// AnswerKeyResult is returned after an answer-key PDF has been applied.
type AnswerKeyResult struct {
	QuizID           string
	Status           quiz.Status
	Answers          quiz.AnswerMap
	Source           structurer.AnswerSource
	UpdatedQuestions int
}

// AttemptGrade is the outcome of grading one attempt.
type AttemptGrade struct {
	AttemptID string
	grader.Result
	Err error
}

// QuizService wires PDF extraction, AI structuring, grading and persistence.
type QuizService struct {
	store      store.Store
	extractor  TextExtractor
	structurer *structurer.Structurer
	workers    int
	logger     *slog.Logger
}

// NewQuizService creates a QuizService. workers bounds concurrent regrading.
func NewQuizService(s store.Store, ext TextExtractor, st *structurer.Structurer, workers int, logger *slog.Logger) *QuizService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &QuizService{
		store:      s,
		extractor:  ext,
		structurer: st,
		workers:    workers,
		logger:     logger,
	}
}

func (qs *QuizService) CreateQuiz(ctx context.Context, title string) (*quiz.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled quiz"
	}
	q := quiz.New(title)
	if err := qs.store.CreateQuiz(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (qs *QuizService) GetQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	return qs.store.GetQuiz(ctx, quizID)
}

func (qs *QuizService) ListQuestions(ctx context.Context, quizID string) ([]store.StoredQuestion, error) {
	if _, err := qs.store.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	return qs.store.ListQuestions(ctx, quizID)
}

func (qs *QuizService) CreateAttempt(ctx context.Context, quizID string, answers quiz.AnswerMap) (*quiz.Attempt, error) {
	if _, err := qs.store.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	a := quiz.NewAttempt(quizID, answers)
	if err := qs.store.CreateAttempt(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ImportQuestions extracts and structures the questions in src, replaces the
// quiz's questions with them and moves the quiz to review.
func (qs *QuizService) ImportQuestions(ctx context.Context, quizID string, src Source) (*ImportResult, error) {
	if _, err := qs.store.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	text, err := qs.extract(ctx, src)
	if err != nil {
		return nil, err
	}
	qs.logger.Info("extracted question text", "quiz_id", quizID, "chars", len(text))

	questions, err := qs.structurer.StructureQuestions(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := qs.store.SaveQuestions(ctx, quizID, questions); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}
	if err := qs.store.UpdateQuizStatus(ctx, quizID, quiz.StatusReview, len(questions)); err != nil {
		return nil, fmt.Errorf("update quiz status: %w", err)
	}

	qs.logger.Info("imported questions", "quiz_id", quizID, "count", len(questions))

	return &ImportResult{
		QuizID:    quizID,
		Status:    quiz.StatusReview,
		Questions: questions,
	}, nil
}

// ImportAnswerKey parses the answer key in src and applies it to the quiz's
// questions. The quiz becomes ready once at least one question has an answer.
func (qs *QuizService) ImportAnswerKey(ctx context.Context, quizID string, src Source) (*AnswerKeyResult, error) {
	q, err := qs.store.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	text, err := qs.extract(ctx, src)
	if err != nil {
		return nil, err
	}

	key, err := qs.structurer.ParseAnswerKey(ctx, text)
	if err != nil {
		return nil, err
	}

	updated, err := qs.store.ApplyAnswerKey(ctx, quizID, key.Answers)
	if err != nil {
		return nil, fmt.Errorf("apply answer key: %w", err)
	}

	status := q.Status
	if updated > 0 {
		status = quiz.StatusReady
		if err := qs.store.UpdateQuizStatus(ctx, quizID, status, q.TotalQuestions); err != nil {
			return nil, fmt.Errorf("update quiz status: %w", err)
		}
	}

	qs.logger.Info("applied answer key",
		"quiz_id", quizID,
		"answers", len(key.Answers),
		"updated", updated,
		"source", key.Source,
	)

	return &AnswerKeyResult{
		QuizID:           quizID,
		Status:           status,
		Answers:          key.Answers,
		Source:           key.Source,
		UpdatedQuestions: updated,
	}, nil
}

// GradeAttempt scores one attempt against the quiz's answer key and stores the score.
func (qs *QuizService) GradeAttempt(ctx context.Context, quizID, attemptID string) (*grader.Result, error) {
	correct, err := qs.answerKey(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := qs.store.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.QuizID != quizID {
		return nil, fmt.Errorf("attempt %s does not belong to quiz %s: %w", attemptID, quizID, store.ErrNotFound)
	}

	result := grader.Grade(attempt.Answers, correct)
	if err := qs.store.SaveAttemptScore(ctx, attemptID, result.Score); err != nil {
		return nil, fmt.Errorf("save score: %w", err)
	}

	qs.logger.Info("graded attempt",
		"quiz_id", quizID,
		"attempt_id", attemptID,
		"score", result.Score,
		"total", result.Total,
	)
	return &result, nil
}

// RegradeQuiz grades every attempt of the quiz on a worker pool.
// A failure on one attempt is reported in its AttemptGrade and does not stop the others.
func (qs *QuizService) RegradeQuiz(ctx context.Context, quizID string) ([]AttemptGrade, error) {
	correct, err := qs.answerKey(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempts, err := qs.store.ListAttempts(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return []AttemptGrade{}, nil
	}

	workers := qs.workers
	if workers > len(attempts) {
		workers = len(attempts)
	}
	pool := worker.NewPool[AttemptGrade](workers, len(attempts))

	for _, a := range attempts {
		pool.Submit(a.ID, func() AttemptGrade {
			result := grader.Grade(a.Answers, correct)
			if err := qs.store.SaveAttemptScore(ctx, a.ID, result.Score); err != nil {
				qs.logger.Error("failed to save regraded score", "attempt_id", a.ID, "error", err)
				return AttemptGrade{AttemptID: a.ID, Result: result, Err: err}
			}
			return AttemptGrade{AttemptID: a.ID, Result: result}
		})
	}
	pool.Close()

	byID := make(map[string]AttemptGrade, len(attempts))
	for r := range pool.Results() {
		byID[r.JobID] = r.Output
	}

	grades := make([]AttemptGrade, 0, len(attempts))
	for _, a := range attempts {
		grades = append(grades, byID[a.ID])
	}

	qs.logger.Info("regraded quiz", "quiz_id", quizID, "attempts", len(grades))
	return grades, nil
}

func (qs *QuizService) answerKey(ctx context.Context, quizID string) (quiz.AnswerMap, error) {
	if _, err := qs.store.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	correct, err := qs.store.CorrectAnswers(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(correct) == 0 {
		return nil, ErrNoAnswerKey
	}
	return correct, nil
}

func (qs *QuizService) extract(ctx context.Context, src Source) (string, error) {
	switch {
	case len(src.Data) > 0:
		return qs.extractor.FromBytes(src.Data)
	case strings.TrimSpace(src.URL) != "":
		return qs.extractor.FromURL(ctx, strings.TrimSpace(src.URL))
	default:
		return "", ErrEmptySource
	}
}
