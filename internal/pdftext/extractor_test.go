package pdftext_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdf2quiz/backend/internal/pdftext"
)

func newExtractor() *pdftext.Extractor {
	return pdftext.NewExtractor(5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte("%PDF-1.7\n..."), true},
		{[]byte("%PDF"), false},
		{[]byte("<html>"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := pdftext.IsPDF(tt.data); got != tt.want {
			t.Errorf("IsPDF(%q) = %v, expected %v", tt.data, got, tt.want)
		}
	}
}

func TestFromBytes_NotPDF(t *testing.T) {
	_, err := newExtractor().FromBytes([]byte("hello world"))

	if !errors.Is(err, pdftext.ErrNotPDF) {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
}

func TestFromBytes_CorruptPDF(t *testing.T) {
	_, err := newExtractor().FromBytes([]byte("%PDF-1.4\nthis is not a real document"))

	if err == nil {
		t.Fatal("expected error for corrupt PDF")
	}
	if errors.Is(err, pdftext.ErrNoText) || errors.Is(err, pdftext.ErrNotPDF) {
		t.Errorf("expected an open error, got %v", err)
	}
}

func TestFromURL_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newExtractor().FromURL(context.Background(), server.URL+"/paper.pdf")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFromURL_NotPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login required</html>"))
	}))
	defer server.Close()

	_, err := newExtractor().FromURL(context.Background(), server.URL)
	if !errors.Is(err, pdftext.ErrNotPDF) {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
}
