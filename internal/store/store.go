package store

import (
	"context"
	"errors"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
)

var (
	ErrNotFound = errors.New("not found")
)

// StoredQuestion is a question row together with its answer-key entry.
type StoredQuestion struct {
	ID     string
	QuizID string
	quiz.Question
	CorrectOption *quiz.Option
}

// Store is the persistence layer for quizzes, questions and attempts.
type Store interface {
	CreateQuiz(ctx context.Context, q *quiz.Quiz) error
	GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error)
	UpdateQuizStatus(ctx context.Context, id string, status quiz.Status, totalQuestions int) error

	// SaveQuestions replaces every question of the quiz.
	SaveQuestions(ctx context.Context, quizID string, questions []quiz.Question) error
	ListQuestions(ctx context.Context, quizID string) ([]StoredQuestion, error)
	// ApplyAnswerKey sets correct_option on questions whose number is in answers.
	ApplyAnswerKey(ctx context.Context, quizID string, answers quiz.AnswerMap) (int, error)
	CorrectAnswers(ctx context.Context, quizID string) (quiz.AnswerMap, error)

	CreateAttempt(ctx context.Context, a *quiz.Attempt) error
	GetAttempt(ctx context.Context, id string) (*quiz.Attempt, error)
	ListAttempts(ctx context.Context, quizID string) ([]*quiz.Attempt, error)
	SaveAttemptScore(ctx context.Context, attemptID string, score int) error

	Close() error
}
