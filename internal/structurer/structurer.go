package structurer

import (
	"context"
	"log/slog"
)

// Generator produces a raw text reply for a prompt. *ai.Chain satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Structurer turns raw PDF text into validated questions and answer keys.
type Structurer struct {
	gen    Generator
	logger *slog.Logger
}

// New creates a Structurer backed by gen.
func New(gen Generator, logger *slog.Logger) *Structurer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Structurer{
		gen:    gen,
		logger: logger,
	}
}

// preview returns the first n characters of s for logging.
func preview(s string, n int) string {
	return truncateRunes(s, n)
}
