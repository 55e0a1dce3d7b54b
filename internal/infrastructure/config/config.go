package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pdf2quiz/backend/internal/ai"
	"github.com/pdf2quiz/backend/internal/store"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	LogLevel        slog.Level
	CORSOrigins     []string

	// Database
	DBDriver store.Driver
	DBDSN    string

	// AI providers, tried in order: every Gemini model, then Kimi, then
	// the optional self-hosted OpenAI-compatible server.
	GeminiAPIKey  string
	GeminiModels  []string
	KimiAPIKey    string
	KimiBaseURL   string
	KimiModel     string
	LocalLLMURL   string
	LocalLLMModel string

	PDFFetchTimeout time.Duration
	RegradeWorkers  int
}

// Load reads .env (if present) and the environment. It exits on invalid values.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddress: getenvDefault("SERVER_ADDRESS", ":8000"),
		CORSOrigins:   splitList(getenvDefault("CORS_ORIGINS", "*")),
		DBDriver:      store.Driver(strings.ToLower(getenvDefault("DB_DRIVER", string(store.DriverSQLite)))),
		DBDSN:         os.Getenv("DB_DSN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModels:  splitList(getenvDefault("GEMINI_MODELS", strings.Join(ai.DefaultGeminiModels, ","))),
		KimiAPIKey:    os.Getenv("KIMI_API_KEY"),
		KimiBaseURL:   getenvDefault("KIMI_BASE_URL", ai.DefaultKimiBaseURL),
		KimiModel:     getenvDefault("KIMI_MODEL", ai.DefaultKimiModel),
		LocalLLMURL:   os.Getenv("LOCAL_LLM_URL"),
		LocalLLMModel: getenvDefault("LOCAL_LLM_MODEL", ai.DefaultLocalModel),
	}

	var err error
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PDFFetchTimeout, err = getDuration("PDF_FETCH_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.RegradeWorkers, err = getInt("REGRADE_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.RegradeWorkers < 1 {
		return nil, fmt.Errorf("REGRADE_WORKERS must be at least 1, got %d", cfg.RegradeWorkers)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch cfg.DBDriver {
	case store.DriverSQLite, store.DriverPostgres:
	default:
		return nil, fmt.Errorf("DB_DRIVER=%q must be %q or %q", cfg.DBDriver, store.DriverSQLite, store.DriverPostgres)
	}

	return cfg, nil
}

// ChainConfig returns the provider settings for ai.NewDefaultChain.
func (c *Config) ChainConfig() ai.ChainConfig {
	return ai.ChainConfig{
		GeminiAPIKey:  c.GeminiAPIKey,
		GeminiModels:  c.GeminiModels,
		KimiAPIKey:    c.KimiAPIKey,
		KimiBaseURL:   c.KimiBaseURL,
		KimiModel:     c.KimiModel,
		LocalLLMURL:   c.LocalLLMURL,
		LocalLLMModel: c.LocalLLMModel,
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid integer: %w", k, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
