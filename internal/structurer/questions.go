package structurer

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
)

// StructureQuestions asks the provider chain to extract every question in
// rawText and validates the reply.
//
// Elements that are not JSON objects are dropped. Missing fields are
// defaulted: question_number to the 1-based position, options to "".
// A reply that yields no usable question is a StructuringError.
func (s *Structurer) StructureQuestions(ctx context.Context, rawText string) ([]quiz.Question, error) {
	prompt := buildQuestionsPrompt(truncateRunes(rawText, MaxQuestionChars))

	reply, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := Normalize(reply)
	items, err := decodeQuestionItems([]byte(cleaned))
	if err != nil {
		s.logger.Error("failed to decode questions",
			"error", err,
			"response", preview(cleaned, 500),
		)
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(items))
	for i, item := range items {
		q, ok := questionFromJSON(item, i+1)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}

	s.logger.Info("structured questions", "received", len(items), "valid", len(questions))
	if len(questions) == 0 {
		return nil, &StructuringError{Reason: "no usable questions in AI response"}
	}
	return questions, nil
}

// decodeQuestionItems resolves the reply shape once: either a JSON array of
// question-like values, or an object whose first array-valued entry (in
// document order) holds them.
func decodeQuestionItems(data []byte) ([]json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StructuringError{Reason: "AI response is not valid JSON", Wrapped: err}
	}

	switch firstByte(raw) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &StructuringError{Reason: "invalid question array", Wrapped: err}
		}
		return items, nil
	case '{':
		arr, err := firstArrayValue(raw)
		if err != nil {
			return nil, &StructuringError{Reason: "invalid question envelope", Wrapped: err}
		}
		if arr == nil {
			return nil, &StructuringError{Reason: "expected JSON array, got object"}
		}
		var items []json.RawMessage
		if err := json.Unmarshal(arr, &items); err != nil {
			return nil, &StructuringError{Reason: "invalid question array", Wrapped: err}
		}
		return items, nil
	default:
		return nil, &StructuringError{Reason: "expected JSON array, got " + jsonKind(raw)}
	}
}

// firstArrayValue walks an object's entries in order and returns the first
// value that is an array, or nil if there is none.
func firstArrayValue(obj json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if firstByte(value) == '[' {
			return value, nil
		}
	}
	return nil, nil
}

// questionFromJSON validates one element. It returns false for non-objects.
func questionFromJSON(item json.RawMessage, position int) (quiz.Question, bool) {
	if firstByte(item) != '{' {
		return quiz.Question{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return quiz.Question{}, false
	}

	number, ok := parseQuestionNumber(fields["question_number"])
	if !ok {
		number = position
	}

	var text string
	if raw, ok := fields["question_text"]; ok {
		if err := json.Unmarshal(raw, &text); err != nil {
			text = ""
		}
	}

	return quiz.NewQuestion(number, text, parseOptions(fields["options"])), true
}

func parseQuestionNumber(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		if n >= 1 && n == math.Trunc(n) && n <= math.MaxInt32 {
			return int(n), true
		}
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err == nil && i >= 1 {
			return i, true
		}
	}
	return 0, false
}

// parseOptions accepts {"A": "..."} objects (label case-insensitive) and,
// leniently, a plain array of option strings in A..D order.
// Non-string option values become "".
func parseOptions(raw json.RawMessage) map[quiz.Option]string {
	opts := make(map[quiz.Option]string, len(quiz.Options))

	switch firstByte(raw) {
	case '{':
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return opts
		}
		for _, o := range quiz.Options {
			v, ok := m[string(o)]
			if !ok {
				v = m[strings.ToLower(string(o))]
			}
			if s, ok := v.(string); ok {
				opts[o] = s
			}
		}
	case '[':
		var arr []any
		if err := json.Unmarshal(raw, &arr); err != nil {
			return opts
		}
		for i, o := range quiz.Options {
			if i >= len(arr) {
				break
			}
			if s, ok := arr[i].(string); ok {
				opts[o] = s
			}
		}
	}
	return opts
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func jsonKind(raw json.RawMessage) string {
	switch b := firstByte(raw); {
	case b == '"':
		return "string"
	case b == 't' || b == 'f':
		return "bool"
	case b == 'n':
		return "null"
	case b == '-' || (b >= '0' && b <= '9'):
		return "number"
	}
	return "unknown"
}
