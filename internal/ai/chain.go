package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrAllProvidersExhausted is matched by *ExhaustedError.
var ErrAllProvidersExhausted = errors.New("all AI providers failed")

// Failure records why a single provider did not produce a reply.
type Failure struct {
	Provider    string
	RateLimited bool
	Err         error
}

func (f Failure) String() string {
	if f.RateLimited {
		return fmt.Sprintf("%s: rate limited: %v", f.Provider, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Provider, f.Err)
}

// ExhaustedError is returned when every provider in the chain failed.
type ExhaustedError struct {
	Failures []Failure
}

func (e *ExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return ErrAllProvidersExhausted.Error() + ": no providers configured"
	}
	reasons := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		reasons[i] = f.String()
	}
	return ErrAllProvidersExhausted.Error() + ": " + strings.Join(reasons, "; ")
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllProvidersExhausted
}

// errNotConfigured is recorded for providers whose Available() is false.
var errNotConfigured = errors.New("not configured")

// Chain tries providers in a fixed priority order until one replies.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain creates a Chain. The order of providers is the priority order.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

// Providers returns the configured providers in priority order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Generate returns the first successful reply. Each provider is tried at
// most once; any provider failure advances to the next one. If ctx is
// cancelled the chain stops and returns the context error.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	failures := make([]Failure, 0, len(c.providers))

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if !p.Available() {
			failures = append(failures, Failure{Provider: p.Name(), Err: errNotConfigured})
			continue
		}

		c.logger.Info("trying AI provider", "provider", p.Name())
		text, err := p.Generate(ctx, prompt)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			f := Failure{Provider: p.Name(), RateLimited: IsRateLimited(err), Err: err}
			failures = append(failures, f)
			if f.RateLimited {
				c.logger.Warn("AI provider rate limited, trying next", "provider", p.Name())
			} else {
				c.logger.Warn("AI provider failed, trying next", "provider", p.Name(), "error", truncate(err.Error(), 100))
			}
			continue
		}

		text = strings.TrimSpace(text)
		c.logger.Info("AI provider succeeded", "provider", p.Name(), "chars", len(text))
		return text, nil
	}

	return "", &ExhaustedError{Failures: failures}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
