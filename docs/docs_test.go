package docs_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/swaggo/swag"

	"github.com/pdf2quiz/backend/docs"
)

func TestReadDoc_CoversEveryRoute(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var doc struct {
		Swagger     string                     `json:"swagger"`
		Info        struct{ Title string }     `json:"info"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}

	if doc.Swagger != "2.0" {
		t.Errorf("expected swagger 2.0, got %q", doc.Swagger)
	}
	if doc.Info.Title != "PDF-to-Quiz API" {
		t.Errorf("expected title %q, got %q", "PDF-to-Quiz API", doc.Info.Title)
	}

	routes := []string{
		"/",
		"/api/quizzes",
		"/api/quizzes/{quizID}",
		"/api/quizzes/{quizID}/questions",
		"/api/quizzes/{quizID}/attempts",
		"/api/quizzes/{quizID}/regrade",
		"/api/parse-pdf",
		"/api/parse-pdf-upload",
		"/api/parse-answer-key",
		"/api/parse-answer-key-upload",
		"/api/extract-basic",
		"/api/grade-quiz",
	}
	for _, r := range routes {
		if _, ok := doc.Paths[r]; !ok {
			t.Errorf("expected path %s in doc", r)
		}
	}
	if len(doc.Paths) != len(routes) {
		t.Errorf("expected %d paths, got %d", len(routes), len(doc.Paths))
	}

	// Every $ref must resolve to a definition.
	for _, ref := range refs(raw) {
		if _, ok := doc.Definitions[ref]; !ok {
			t.Errorf("unresolved $ref %q", ref)
		}
	}
}

func refs(raw string) []string {
	const prefix = `"#/definitions/`
	var out []string
	for {
		i := strings.Index(raw, prefix)
		if i < 0 {
			return out
		}
		raw = raw[i+len(prefix):]
		end := strings.IndexByte(raw, '"')
		out = append(out, raw[:end])
		raw = raw[end:]
	}
}
