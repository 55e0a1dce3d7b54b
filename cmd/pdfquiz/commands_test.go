package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdf2quiz/backend/internal/grader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestGradeCommand(t *testing.T) {
	keyPath := writeFile(t, "key.json", `{"1":"A","2":"B","3":"C"}`)
	answersPath := writeFile(t, "answers.json", `{"1":"a","2":"D"}`)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), []string{"pdfquiz", "grade", "--key", keyPath, "--answers", answersPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result grader.Result
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode output %q: %v", out.String(), err)
	}
	if result.Score != 1 || result.Total != 3 || result.Percentage != 33.3 {
		t.Errorf("expected 1/3 (33.3%%), got %d/%d (%v%%)", result.Score, result.Total, result.Percentage)
	}
}

func TestGradeCommand_EmptyKey(t *testing.T) {
	keyPath := writeFile(t, "key.json", `{"1":"X"}`)
	answersPath := writeFile(t, "answers.json", `{}`)

	app := newApp()
	app.Writer = &bytes.Buffer{}

	if err := app.Run(context.Background(), []string{"pdfquiz", "grade", "--key", keyPath, "--answers", answersPath}); err == nil {
		t.Error("expected error for an answer key without valid answers")
	}
}

func TestAnswersCommand_BasicRejectsNonPDF(t *testing.T) {
	path := writeFile(t, "notes.pdf", "1. A\n2. B")

	app := newApp()
	app.Writer = &bytes.Buffer{}

	if err := app.Run(context.Background(), []string{"pdfquiz", "answers", "--basic", path}); err == nil {
		t.Error("expected error for a file that is not a PDF")
	}
}
