package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pdf2quiz/backend/internal/ai"
	"github.com/pdf2quiz/backend/internal/api"
	"github.com/pdf2quiz/backend/internal/infrastructure/config"
	"github.com/pdf2quiz/backend/internal/pdftext"
	"github.com/pdf2quiz/backend/internal/service"
	"github.com/pdf2quiz/backend/internal/store"
	"github.com/pdf2quiz/backend/internal/structurer"
)

// @title           PDF-to-Quiz API
// @version         1.0
// @description     Turn question-paper and answer-key PDFs into structured quizzes, then grade attempts.

// @host      localhost:8000
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.Open(context.Background(), cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	chain, closeAI := ai.NewDefaultChain(cfg.ChainConfig(), logger)
	defer closeAI()

	for _, p := range chain.Providers() {
		logger.Info("AI provider", "name", p.Name(), "available", p.Available())
	}

	quizzes := service.NewQuizService(
		db,
		pdftext.NewExtractor(cfg.PDFFetchTimeout, logger),
		structurer.New(chain, logger),
		cfg.RegradeWorkers,
		logger,
	)
	handler := api.NewHandler(quizzes, logger)

	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "db_driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
