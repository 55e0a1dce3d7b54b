package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrClientClosed is returned by providers whose GeminiClient was closed.
var ErrClientClosed = errors.New("gemini client closed")

// DefaultGeminiModels are tried in order; each model has its own quota.
var DefaultGeminiModels = []string{"gemini-2.5-flash", "gemini-2.0-flash"}

// GeminiProvider calls one Gemini model. The underlying client is created
// lazily on first use and shared between models via GeminiClient.
type GeminiProvider struct {
	client *GeminiClient
	model  string
}

// Compile-time check: *GeminiProvider satisfies the Provider interface.
var _ Provider = (*GeminiProvider)(nil)

// GeminiClient owns the genai client for an API key.
type GeminiClient struct {
	apiKey string

	once   sync.Once
	client *genai.Client
	err    error
}

// NewGeminiClient creates a client holder. An empty key yields providers
// that report themselves unavailable.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey}
}

// Providers returns one provider per model, in the given order.
func (gc *GeminiClient) Providers(models ...string) []Provider {
	providers := make([]Provider, 0, len(models))
	for _, m := range models {
		providers = append(providers, &GeminiProvider{client: gc, model: m})
	}
	return providers
}

// get creates the genai client on first use. It is not tied to a request
// context so that one cancelled request does not poison later calls.
func (gc *GeminiClient) get() (*genai.Client, error) {
	gc.once.Do(func() {
		gc.client, gc.err = genai.NewClient(context.Background(), option.WithAPIKey(gc.apiKey))
	})
	if gc.err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", gc.err)
	}
	return gc.client, nil
}

// Close releases the genai client if one was created. A client that was
// never used is marked closed so later calls fail with ErrClientClosed.
func (gc *GeminiClient) Close() error {
	gc.once.Do(func() {
		gc.err = ErrClientClosed
	})
	if gc.client == nil {
		return nil
	}
	return gc.client.Close()
}

func (p *GeminiProvider) Name() string {
	return "gemini/" + p.model
}

func (p *GeminiProvider) Available() bool {
	return p.client != nil && p.client.apiKey != ""
}

// Generate asks the model for a JSON reply at low temperature.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := p.client.get()
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(p.model)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned empty content")
	}
	return text, nil
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	if IsRateLimited(err) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
