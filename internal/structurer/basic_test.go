package structurer_test

import (
	"reflect"
	"testing"

	"github.com/pdf2quiz/backend/internal/domain/quiz"
	"github.com/pdf2quiz/backend/internal/structurer"
)

func TestExtractBasic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[int]quiz.Option
	}{
		{
			name: "mixed separators",
			in:   "1. B\n2) A\nQ3: C\n4 D",
			want: map[int]quiz.Option{1: "B", 2: "A", 3: "C", 4: "D"},
		},
		{
			name: "parenthesized and bracketed letters",
			in:   "1. (b)\n2) [C]\nQ.3 - d",
			want: map[int]quiz.Option{1: "B", 2: "C", 3: "D"},
		},
		{
			name: "range guard",
			in:   "301. A\n0. B\n300. C",
			want: map[int]quiz.Option{300: "C"},
		},
		{
			name: "last match wins",
			in:   "5. A\n5. B",
			want: map[int]quiz.Option{5: "B"},
		},
		{
			name: "no answers",
			in:   "Answer Key\nPhysics Paper",
			want: map[int]quiz.Option{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := structurer.ExtractBasic(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractBasic(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}
