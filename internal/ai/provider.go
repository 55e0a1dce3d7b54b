package ai

import (
	"context"
	"errors"
	"strings"
)

// Provider is one upstream text-generation handle in the fallback chain.
// Implementations may call a hosted LLM or return canned text (for tests).
type Provider interface {
	// Name identifies the provider in logs and failure reports, e.g. "gemini/gemini-2.5-flash".
	Name() string
	// Available reports whether the provider is configured (API key present).
	Available() bool
	// Generate sends a single prompt and returns the raw text reply.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrRateLimited marks a quota or rate-limit rejection from a provider.
var ErrRateLimited = errors.New("rate limited")

// IsRateLimited reports whether err is a quota/rate-limit signal.
// Providers should wrap ErrRateLimited; the string checks catch SDK errors
// that were not classified at the source.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "ResourceExhausted") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
