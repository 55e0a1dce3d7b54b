package config_test

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/pdf2quiz/backend/internal/infrastructure/config"
	"github.com/pdf2quiz/backend/internal/store"
)

var configKeys = []string{
	"SERVER_ADDRESS", "SHUTDOWN_TIMEOUT", "REQUEST_TIMEOUT", "LOG_LEVEL", "CORS_ORIGINS",
	"DB_DRIVER", "DB_DSN", "GEMINI_API_KEY", "GEMINI_MODELS", "KIMI_API_KEY",
	"KIMI_BASE_URL", "KIMI_MODEL", "LOCAL_LLM_URL", "LOCAL_LLM_MODEL", "PDF_FETCH_TIMEOUT", "REGRADE_WORKERS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerAddress != ":8000" {
		t.Errorf("expected :8000, got %q", cfg.ServerAddress)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.PDFFetchTimeout != 60*time.Second {
		t.Errorf("expected 60s, got %v", cfg.PDFFetchTimeout)
	}
	if cfg.DBDriver != store.DriverSQLite {
		t.Errorf("expected sqlite, got %q", cfg.DBDriver)
	}
	if !reflect.DeepEqual(cfg.GeminiModels, []string{"gemini-2.5-flash", "gemini-2.0-flash"}) {
		t.Errorf("unexpected gemini models %v", cfg.GeminiModels)
	}
	if cfg.KimiModel != "moonshot-v1-8k" || cfg.KimiBaseURL != "https://api.moonshot.cn/v1" {
		t.Errorf("unexpected kimi defaults %q %q", cfg.KimiModel, cfg.KimiBaseURL)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("expected [*], got %v", cfg.CORSOrigins)
	}
	if cfg.RegradeWorkers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.RegradeWorkers)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/quiz")
	t.Setenv("GEMINI_MODELS", " gemini-2.0-flash , ")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REGRADE_WORKERS", "8")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DBDriver != store.DriverPostgres || cfg.DBDSN != "postgres://localhost/quiz" {
		t.Errorf("unexpected db config %q %q", cfg.DBDriver, cfg.DBDSN)
	}
	if !reflect.DeepEqual(cfg.GeminiModels, []string{"gemini-2.0-flash"}) {
		t.Errorf("unexpected gemini models %v", cfg.GeminiModels)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.RegradeWorkers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.RegradeWorkers)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "soon"},
		{"PDF_FETCH_TIMEOUT", "10"},
		{"REGRADE_WORKERS", "many"},
		{"REGRADE_WORKERS", "0"},
		{"LOG_LEVEL", "loud"},
		{"DB_DRIVER", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := config.FromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestFromEnv_DSNLeftEmptyForStoreDefault(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_DRIVER", driver)

			cfg, err := config.FromEnv()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DBDSN != "" {
				t.Errorf("expected empty DSN so the store picks the %s default, got %q", driver, cfg.DBDSN)
			}
		})
	}
}
