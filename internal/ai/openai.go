package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultKimiBaseURL = "https://api.moonshot.cn/v1"
	DefaultKimiModel   = "moonshot-v1-8k"
	DefaultLocalModel  = "qwen3-8b"
)

const jsonOnlySystemPrompt = "You are a precise JSON-only parser. Return only valid JSON, no markdown, no explanations."

// OpenAIProvider calls any OpenAI-compatible chat completion endpoint
// (Kimi/Moonshot, OpenAI, vLLM, LM Studio, etc.).
type OpenAIProvider struct {
	name      string
	model     string
	available bool
	client    *openai.Client
}

// Compile-time check: *OpenAIProvider satisfies the Provider interface.
var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider for the endpoint at baseURL.
// An empty baseURL uses the library default (api.openai.com).
func NewOpenAIProvider(name, apiKey, baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}

	return &OpenAIProvider{
		name:      name,
		model:     model,
		available: apiKey != "",
		client:    openai.NewClientWithConfig(cfg),
	}
}

// NewKimiProvider creates the Moonshot fallback provider.
func NewKimiProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultKimiBaseURL
	}
	if model == "" {
		model = DefaultKimiModel
	}
	return NewOpenAIProvider("kimi/"+model, apiKey, baseURL, model)
}

// NewLocalProvider creates a provider for a self-hosted OpenAI-compatible
// server such as Ollama or LM Studio. It needs no API key and is available
// whenever baseURL is set.
func NewLocalProvider(baseURL, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultLocalModel
	}
	p := NewOpenAIProvider("local/"+model, "local", baseURL, model)
	p.available = baseURL != ""
	return p
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

func (p *OpenAIProvider) Available() bool {
	return p.available
}

// Generate sends prompt as a single user message with a JSON-only system prompt.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: jsonOnlySystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.1,
		},
	)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("LLM returned empty content")
	}
	return content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("LLM request failed: %w", err)
}
