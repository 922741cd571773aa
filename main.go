package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xiaot623/gogo/studybuddy/internal/adapter/llm"
	"github.com/xiaot623/gogo/studybuddy/internal/config"
	"github.com/xiaot623/gogo/studybuddy/internal/policy"
	"github.com/xiaot623/gogo/studybuddy/internal/repository"
	"github.com/xiaot623/gogo/studybuddy/internal/service"
	server "github.com/xiaot623/gogo/studybuddy/internal/transport/http"
	"github.com/xiaot623/gogo/studybuddy/internal/transport/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting studybuddy",
		"http_port", cfg.HTTPPort,
		"base_url", cfg.BaseURL,
		"model", cfg.Model,
		"history_backend", cfg.HistoryBackend,
	)
	if !cfg.APIKeyConfigured() && cfg.Mode == "" {
		logger.Warn("OPENROUTER_API_KEY is not set, every request will return the upstream error")
	}

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.Mode, cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger)
	completer := llm.NewCompleter(llmClient, cfg.Model, logger)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		logger.Error("failed to initialize policy engine", "error", err)
		os.Exit(1)
	}

	// Initialize history store
	store, err := repository.New(cfg.HistoryBackend)
	if err != nil {
		logger.Error("failed to initialize history store", "error", err)
		os.Exit(1)
	}

	// Initialize service
	svc := service.New(store, completer, policyEngine, cfg.HistoryBackend, logger)
	defer svc.Close()

	// Create server
	wsServer := ws.NewServer(cfg, svc, logger)
	e := server.NewServer(svc, wsServer, logger)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("server started", "session_id", svc.SessionID(), "port", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down studybuddy")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("failed to shutdown server gracefully", "error", err)
	}

	logger.Info("studybuddy stopped")
}
