// Package pdftext extracts plain text from PDF documents.
//
// It uses the pure-Go ledongthuc/pdf reader, so no CGO or external
// binaries are needed. Image-only PDFs yield ErrNoText; there is no OCR.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNoText is returned when a PDF has no extractable text layer.
	ErrNoText = errors.New("no extractable text in PDF")

	// ErrNotPDF is returned when the data does not start with the PDF magic bytes.
	ErrNotPDF = errors.New("not a PDF document")
)

// MaxDownloadSize caps the size of a PDF fetched by URL.
const MaxDownloadSize = 50 << 20

// Extractor converts PDF bytes or a PDF URL into plain text.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

// NewExtractor creates an Extractor whose URL downloads time out after timeout.
func NewExtractor(timeout time.Duration, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FromBytes extracts the text of every page, joining pages with a blank line.
func (e *Extractor) FromBytes(data []byte) (text string, err error) {
	if !IsPDF(data) {
		return "", ErrNotPDF
	}

	// The pdf reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := reader.NumPage()
	parts := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages are images only.
			e.logger.Warn("page text extraction failed", "page", i, "error", err)
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	text = strings.Join(parts, "\n\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	e.logger.Info("extracted text from PDF", "pages", pageCount, "chars", len(text))
	return text, nil
}

// FromURL downloads a PDF and extracts its text.
func (e *Extractor) FromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to download PDF: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF body: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return "", fmt.Errorf("PDF exceeds %d bytes", MaxDownloadSize)
	}

	return e.FromBytes(data)
}

// IsPDF checks the "%PDF-" magic bytes.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
