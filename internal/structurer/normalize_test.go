package structurer_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pdf2quiz/backend/internal/structurer"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain array",
			in:   `[{"a":1}]`,
			want: `[{"a":1}]`,
		},
		{
			name: "surrounding whitespace",
			in:   "\n  {\"1\":\"B\"}  \n",
			want: `{"1":"B"}`,
		},
		{
			name: "json fence",
			in:   "```json\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"x\": true}\n```",
			want: `{"x": true}`,
		},
		{
			name: "leading and trailing prose",
			in:   `Here are the questions: [{"q": 1}] Hope this helps!`,
			want: `[{"q": 1}]`,
		},
		{
			name: "object with prose",
			in:   `Sure! {"1": "A", "2": "C"} Let me know.`,
			want: `{"1": "A", "2": "C"}`,
		},
		{
			name: "bracket inside string literal",
			in:   `Result: [{"question_text": "Which of ] and [ is a bracket?"}] done`,
			want: `[{"question_text": "Which of ] and [ is a bracket?"}]`,
		},
		{
			name: "escaped quote inside string",
			in:   `note [{"t": "say \"]\" now"}] end`,
			want: `[{"t": "say \"]\" now"}]`,
		},
		{
			name: "array preferred over object",
			in:   `text {"items": [1]} more`,
			want: `[1]`,
		},
		{
			name: "invalid array falls back to object",
			in:   `see [not json] then {"1": "B"}`,
			want: `{"1": "B"}`,
		},
		{
			name: "truncated reply returned unchanged",
			in:   `  [{"question_number": 1, "question_text": "cut off`,
			want: `[{"question_number": 1, "question_text": "cut off`,
		},
		{
			name: "no json at all",
			in:   "I could not find any questions.",
			want: "I could not find any questions.",
		},
		{
			name: "empty",
			in:   "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := structurer.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_PreservesLogicalValue(t *testing.T) {
	payload := `[{"question_number":1,"question_text":"2 > 1 [true]?","options":{"A":"{yes}","B":"no","C":"","D":""}}]`
	wrappers := []string{
		payload,
		"```json\n" + payload + "\n```",
		"Here you go:\n" + payload,
		"Here you go:\n" + payload + "\nThanks.",
	}

	var want any
	if err := json.Unmarshal([]byte(payload), &want); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	for _, w := range wrappers {
		var got any
		if err := json.Unmarshal([]byte(structurer.Normalize(w)), &got); err != nil {
			t.Errorf("normalized %q does not parse: %v", w, err)
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("normalized %q changed the value: %v", w, got)
		}
	}
}
