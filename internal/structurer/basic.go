package structurer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
)

// Question numbers outside this range are treated as noise (page numbers, years).
const (
	minQuestionNumber = 1
	maxQuestionNumber = 300
)

// answerPatterns are applied in order. Supported forms include
// "1. B", "1) B", "1: B", "1 - B", "Q1: B", "Q.1 B", "1. (B)", "1) [B]" and "1 B".
var answerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Q\.?\s*)?(\d+)\s*[.):\-]\s*[(\[]?([A-Da-d])[)\]]?`),
	regexp.MustCompile(`(\d+)\s+([A-Da-d])\b`),
}

// ExtractBasic pulls "<number><separator><letter>" pairs out of text without
// calling any provider. When a question number appears more than once the
// last match wins, in pattern order then left-to-right.
func ExtractBasic(text string) map[int]quiz.Option {
	answers := make(map[int]quiz.Option)

	for _, pattern := range answerPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			num, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if num < minQuestionNumber || num > maxQuestionNumber {
				continue
			}
			answers[num] = quiz.Option(strings.ToUpper(m[2]))
		}
	}

	return answers
}
