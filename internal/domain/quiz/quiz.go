package quiz

import (
	"strconv"
	"strings"
	"time"

	"github.com/pdf2quiz/backend/internal/id"
)

// Option is one of the four canonical multiple-choice labels.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// Options lists the canonical labels in display order.
var Options = []Option{OptionA, OptionB, OptionC, OptionD}

// ParseOption trims and uppercases s and reports whether it is a canonical label.
func ParseOption(s string) (Option, bool) {
	o := Option(strings.ToUpper(strings.TrimSpace(s)))
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return o, true
	}
	return "", false
}

// Question is a single extracted multiple-choice question.
// Options always holds all four canonical labels.
type Question struct {
	QuestionNumber int               `json:"question_number"`
	QuestionText   string            `json:"question_text"`
	Options        map[Option]string `json:"options"`
}

// NewQuestion builds a question with every option label present.
func NewQuestion(number int, text string, options map[Option]string) Question {
	opts := make(map[Option]string, len(Options))
	for _, o := range Options {
		opts[o] = options[o]
	}
	return Question{
		QuestionNumber: number,
		QuestionText:   text,
		Options:        opts,
	}
}

// AnswerMap maps a question number (as a string) to an option label.
type AnswerMap map[string]Option

// AnswerMapFromInts converts an integer-keyed map to string keys.
func AnswerMapFromInts(m map[int]Option) AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[strconv.Itoa(k)] = v
	}
	return out
}

// SanitizeAnswers keeps only entries whose value is a canonical option,
// uppercasing values and trimming keys. Invalid entries are dropped.
func SanitizeAnswers(raw map[string]string) AnswerMap {
	out := make(AnswerMap, len(raw))
	for k, v := range raw {
		if o, ok := ParseOption(v); ok {
			out[strings.TrimSpace(k)] = o
		}
	}
	return out
}

type Status string

const (
	StatusDraft  Status = "draft"
	StatusReview Status = "review"
	StatusReady  Status = "ready"
)

// Quiz is the parent record that questions and attempts hang off.
type Quiz struct {
	ID             string
	Title          string
	Status         Status
	TotalQuestions int
	CreatedAt      time.Time
}

func New(title string) *Quiz {
	return &Quiz{
		ID:        id.GenerateID(),
		Title:     title,
		Status:    StatusDraft,
		CreatedAt: time.Now().UTC(),
	}
}

// Attempt is a user's submission for a quiz.
type Attempt struct {
	ID        string
	QuizID    string
	Answers   AnswerMap
	Score     *int
	IsGraded  bool
	CreatedAt time.Time
}

func NewAttempt(quizID string, answers AnswerMap) *Attempt {
	if answers == nil {
		answers = AnswerMap{}
	}
	return &Attempt{
		ID:        id.GenerateID(),
		QuizID:    quizID,
		Answers:   answers,
		CreatedAt: time.Now().UTC(),
	}
}
