package grader

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
)

// Detail is the outcome for a single question.
type Detail struct {
	QuestionNumber int          `json:"question_number"`
	UserOption     *quiz.Option `json:"user_option"` // nil when unanswered
	CorrectOption  quiz.Option  `json:"correct_option"`
	IsCorrect      bool         `json:"is_correct"`
}

// Result is the graded outcome of an attempt.
type Result struct {
	Score int `json:"score"`
	// Total counts correct-answer entries whose key is an integer; keys that
	// cannot name a question are left out, so Total may be below len(correctAnswers).
	Total      int      `json:"total"`
	Percentage float64  `json:"percentage"`
	Details    []Detail `json:"details"`
}

type keyedAnswer struct {
	number int
	key    string
	option quiz.Option
}

// Grade compares userAnswers against correctAnswers.
//
// Total is driven by the correct answers only: unanswered or extra user
// answers never change it. Details are ordered by numeric question number.
// Keys that are not integers cannot name a question and are ignored.
func Grade(userAnswers, correctAnswers quiz.AnswerMap) Result {
	keyed := make([]keyedAnswer, 0, len(correctAnswers))
	for k, v := range correctAnswers {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		keyed = append(keyed, keyedAnswer{number: n, key: k, option: v})
	}
	sort.Slice(keyed, func(i, j int) bool {
		return keyed[i].number < keyed[j].number
	})

	result := Result{
		Total:   len(keyed),
		Details: make([]Detail, 0, len(keyed)),
	}

	for _, ka := range keyed {
		user, answered := lookup(userAnswers, ka)
		correct := answered && user == ka.option
		if correct {
			result.Score++
		}

		d := Detail{
			QuestionNumber: ka.number,
			CorrectOption:  ka.option,
			IsCorrect:      correct,
		}
		if answered {
			u := user
			d.UserOption = &u
		}
		result.Details = append(result.Details, d)
	}

	result.Percentage = Percentage(result.Score, result.Total)
	return result
}

// Percentage returns score/total*100 rounded to one decimal, or 0 when total is 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*1000) / 10
}

// lookup finds the user's answer by canonical number first, then by the
// exact key used in the answer key ("01" vs "1").
func lookup(userAnswers quiz.AnswerMap, ka keyedAnswer) (quiz.Option, bool) {
	if v, ok := userAnswers[strconv.Itoa(ka.number)]; ok && v != "" {
		return v, true
	}
	if v, ok := userAnswers[ka.key]; ok && v != "" {
		return v, true
	}
	return "", false
}
