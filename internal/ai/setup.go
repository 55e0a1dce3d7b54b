package ai

import "log/slog"

// ChainConfig lists the credentials and models for every known provider.
type ChainConfig struct {
	GeminiAPIKey  string
	GeminiModels  []string
	KimiAPIKey    string
	KimiBaseURL   string
	KimiModel     string
	LocalLLMURL   string
	LocalLLMModel string
}

// NewDefaultChain builds the fallback order used by the server and the CLI:
// each Gemini model, then Kimi, then the local server. The returned close
// func releases the shared Gemini client.
func NewDefaultChain(cfg ChainConfig, logger *slog.Logger) (*Chain, func() error) {
	models := cfg.GeminiModels
	if len(models) == 0 {
		models = DefaultGeminiModels
	}

	gemini := NewGeminiClient(cfg.GeminiAPIKey)
	providers := gemini.Providers(models...)
	providers = append(providers,
		NewKimiProvider(cfg.KimiAPIKey, cfg.KimiBaseURL, cfg.KimiModel),
		NewLocalProvider(cfg.LocalLLMURL, cfg.LocalLLMModel),
	)

	return NewChain(logger, providers...), gemini.Close
}
