package structurer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
)

// AnswerSource tells which path produced an answer key.
type AnswerSource string

const (
	SourceAI    AnswerSource = "ai"
	SourceRegex AnswerSource = "regex"
)

// AnswerKey is a validated question-number to option mapping.
type AnswerKey struct {
	Answers quiz.AnswerMap
	Source  AnswerSource
}

// ParseAnswerKey extracts the correct option for each question in rawText.
//
// The provider chain is tried first; any failure there is logged and treated
// as an empty result. If the AI path yields nothing usable, ExtractBasic runs
// over the same text. ErrAnswerKeyUnavailable is returned when both are empty.
func (s *Structurer) ParseAnswerKey(ctx context.Context, rawText string) (*AnswerKey, error) {
	answers, err := s.answerKeyWithAI(ctx, rawText)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("AI answer key parsing failed, falling back to regex", "error", err)
	} else {
		s.logger.Info("AI parsed answer key", "answers", len(answers))
	}

	if len(answers) > 0 {
		return &AnswerKey{Answers: answers, Source: SourceAI}, nil
	}

	answers = quiz.AnswerMapFromInts(ExtractBasic(rawText))
	s.logger.Info("regex parsed answer key", "answers", len(answers))

	if len(answers) == 0 {
		return nil, ErrAnswerKeyUnavailable
	}
	return &AnswerKey{Answers: answers, Source: SourceRegex}, nil
}

func (s *Structurer) answerKeyWithAI(ctx context.Context, rawText string) (quiz.AnswerMap, error) {
	prompt := buildAnswerKeyPrompt(truncateRunes(rawText, MaxAnswerKeyChars))

	reply, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := Normalize(reply)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		s.logger.Error("failed to decode answer key",
			"error", err,
			"response", preview(cleaned, 500),
		)
		return nil, &StructuringError{Reason: "answer key response is not valid JSON", Wrapped: err}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &StructuringError{Reason: fmt.Sprintf("expected JSON object, got %T", parsed)}
	}

	answers := make(quiz.AnswerMap, len(obj))
	for k, v := range obj {
		str, ok := v.(string)
		if !ok {
			continue
		}
		if o, ok := quiz.ParseOption(str); ok {
			answers[strings.TrimSpace(k)] = o
		}
	}
	return answers, nil
}
