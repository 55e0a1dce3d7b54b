package structurer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pdf2quiz/backend/internal/ai"
	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/structurer"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newStructurer(gen structurer.Generator) *structurer.Structurer {
	return structurer.New(gen, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStructureQuestions_WellFormed(t *testing.T) {
	gen := &fakeGenerator{reply: `[{"question_number":1,"question_text":"Q?","options":{"A":"x","B":"y","C":"z","D":"w"}}]`}

	got, err := newStructurer(gen).StructureQuestions(context.Background(), "raw text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	q := got[0]
	if q.QuestionNumber != 1 || q.QuestionText != "Q?" {
		t.Errorf("unexpected question: %+v", q)
	}
	want := map[quiz.Option]string{"A": "x", "B": "y", "C": "z", "D": "w"}
	for o, v := range want {
		if q.Options[o] != v {
			t.Errorf("option %s: expected %q, got %q", o, v, q.Options[o])
		}
	}
}

func TestStructureQuestions_EnvelopeObject(t *testing.T) {
	gen := &fakeGenerator{reply: `{"title": "Paper 1", "meta": {"n": 2}, "items": [{"question_text": "First"}, {"question_text": "Second"}], "other": [1]}`}

	got, err := newStructurer(gen).StructureQuestions(context.Background(), "raw text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	if got[0].QuestionText != "First" || got[1].QuestionText != "Second" {
		t.Errorf("unexpected questions: %+v", got)
	}
}

func TestStructureQuestions_DefaultsAndDrops(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n" + `[
		{"question_text": "no number", "options": {"A": "a"}},
		"not an object",
		42,
		{"question_number": "7", "question_text": "string number", "options": {"a": "lower", "B": 5}},
		{"question_number": 2.5, "question_text": "fractional"},
		{"question_number": 9, "options": ["w", "x", "y", "z"]}
	]` + "\n```"}

	got, err := newStructurer(gen).StructureQuestions(context.Background(), "raw text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 questions, got %d: %+v", len(got), got)
	}

	if got[0].QuestionNumber != 1 || got[0].Options["A"] != "a" || got[0].Options["D"] != "" {
		t.Errorf("unexpected first question: %+v", got[0])
	}
	if len(got[0].Options) != 4 {
		t.Errorf("expected all four option keys, got %v", got[0].Options)
	}
	if got[1].QuestionNumber != 7 || got[1].Options["A"] != "lower" || got[1].Options["B"] != "" {
		t.Errorf("unexpected second question: %+v", got[1])
	}
	if got[2].QuestionNumber != 5 {
		t.Errorf("expected fractional number to default to position 5, got %d", got[2].QuestionNumber)
	}
	if got[3].QuestionNumber != 9 || got[3].QuestionText != "" || got[3].Options["D"] != "z" {
		t.Errorf("unexpected fourth question: %+v", got[3])
	}
}

func TestStructureQuestions_NoUsableQuestions(t *testing.T) {
	for _, reply := range []string{"[]", `["a", 1, null]`, `{"questions": []}`} {
		got, err := newStructurer(&fakeGenerator{reply: reply}).StructureQuestions(context.Background(), "raw")
		if !errors.Is(err, structurer.ErrStructuringFailed) {
			t.Errorf("reply %s: expected ErrStructuringFailed, got %v", reply, err)
		}
		if got != nil {
			t.Errorf("reply %s: expected nil questions, got %v", reply, got)
		}
	}
}

func TestStructureQuestions_Unusable(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose only", "Sorry, I cannot help with that."},
		{"object without array", `{"error": "nothing found"}`},
		{"scalar", `"just a string"`},
		{"truncated", `[{"question_number": 1, "question_text": "cut`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newStructurer(&fakeGenerator{reply: tt.reply}).StructureQuestions(context.Background(), "raw")
			if !errors.Is(err, structurer.ErrStructuringFailed) {
				t.Errorf("expected ErrStructuringFailed, got %v", err)
			}
		})
	}
}

func TestStructureQuestions_ProviderExhausted(t *testing.T) {
	chain := ai.NewChain(nil)

	_, err := newStructurer(chain).StructureQuestions(context.Background(), "raw")
	if !errors.Is(err, ai.ErrAllProvidersExhausted) {
		t.Errorf("expected ErrAllProvidersExhausted, got %v", err)
	}
}

func TestStructureQuestions_TruncatesInput(t *testing.T) {
	gen := &fakeGenerator{reply: "[]"}
	raw := strings.Repeat("x", structurer.MaxQuestionChars+500)

	_, _ = newStructurer(gen).StructureQuestions(context.Background(), raw)

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(gen.prompts))
	}
	if strings.Contains(gen.prompts[0], strings.Repeat("x", structurer.MaxQuestionChars+1)) {
		t.Error("expected raw text to be truncated in the prompt")
	}
	if !strings.Contains(gen.prompts[0], strings.Repeat("x", structurer.MaxQuestionChars)) {
		t.Error("expected truncated raw text to be present in the prompt")
	}
}

func TestParseAnswerKey_TruncatesInput(t *testing.T) {
	gen := &fakeGenerator{reply: `{}`}
	raw := strings.Repeat("y", structurer.MaxAnswerKeyChars+100) + "\n1. B"

	got, err := newStructurer(gen).ParseAnswerKey(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, strings.Repeat("y", structurer.MaxAnswerKeyChars)) {
		t.Error("expected the first MaxAnswerKeyChars characters in the prompt")
	}
	if strings.Contains(prompt, strings.Repeat("y", structurer.MaxAnswerKeyChars+1)) {
		t.Error("expected answer key text to be cut at MaxAnswerKeyChars")
	}
	if strings.Contains(prompt, "1. B") {
		t.Error("expected text past the budget to be left out of the prompt")
	}

	if got.Source != structurer.SourceRegex {
		t.Errorf("expected source %q, got %q", structurer.SourceRegex, got.Source)
	}
	if len(got.Answers) != 1 || got.Answers["1"] != quiz.OptionB {
		t.Errorf("expected regex fallback over the full text to find 1:B, got %v", got.Answers)
	}
}

func TestParseAnswerKey_AIPath(t *testing.T) {
	gen := &fakeGenerator{reply: `Here is the key: {"1": "b", "2": "A", "3": "E", "4": 7}`}

	got, err := newStructurer(gen).ParseAnswerKey(context.Background(), "1. C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Source != structurer.SourceAI {
		t.Errorf("expected source %q, got %q", structurer.SourceAI, got.Source)
	}
	want := quiz.AnswerMap{"1": "B", "2": "A"}
	if len(got.Answers) != len(want) || got.Answers["1"] != "B" || got.Answers["2"] != "A" {
		t.Errorf("expected %v, got %v", want, got.Answers)
	}
}

func TestParseAnswerKey_FallsBackToRegex(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"provider error", &fakeGenerator{err: errors.New("all down")}},
		{"empty mapping", &fakeGenerator{reply: `{}`}},
		{"only invalid values", &fakeGenerator{reply: `{"1": "Z"}`}},
		{"array instead of object", &fakeGenerator{reply: `["A", "B"]`}},
		{"garbage", &fakeGenerator{reply: "no idea"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newStructurer(tt.gen).ParseAnswerKey(context.Background(), "1. B\n2) A\nQ3: C\n4 D")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Source != structurer.SourceRegex {
				t.Errorf("expected source %q, got %q", structurer.SourceRegex, got.Source)
			}
			want := quiz.AnswerMap{"1": "B", "2": "A", "3": "C", "4": "D"}
			if len(got.Answers) != len(want) {
				t.Fatalf("expected %v, got %v", want, got.Answers)
			}
			for k, v := range want {
				if got.Answers[k] != v {
					t.Errorf("answer %s: expected %s, got %s", k, v, got.Answers[k])
				}
			}
		})
	}
}

func TestParseAnswerKey_Unavailable(t *testing.T) {
	_, err := newStructurer(&fakeGenerator{reply: "{}"}).ParseAnswerKey(context.Background(), "no answers here")

	if !errors.Is(err, structurer.ErrAnswerKeyUnavailable) {
		t.Errorf("expected ErrAnswerKeyUnavailable, got %v", err)
	}
}
