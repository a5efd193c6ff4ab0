package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contextbridge/bridge/internal/api"
	"github.com/contextbridge/bridge/internal/config"
	"github.com/contextbridge/bridge/internal/events"
	"github.com/contextbridge/bridge/internal/llm"
	"github.com/contextbridge/bridge/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("contextd starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	// Anthropic client (optional — contexts still store without AI summaries)
	summarizer := llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	if summarizer.Available() {
		slog.Info("anthropic client ready", "model", cfg.AnthropicModel)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set, AI summaries disabled")
	}

	// NATS (optional)
	var pub *events.Publisher
	if cfg.NatsURL != "" {
		pub, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, lifecycle events disabled")
	}

	// Retention sweep
	sched := cron.New()
	if _, err := sched.AddFunc(cfg.CleanupSchedule, func() {
		n, err := db.CleanupExpired(ctx)
		if err != nil {
			slog.Error("cleanup failed", "error", err)
			return
		}
		slog.Info("expired contexts removed", "count", n)
	}); err != nil {
		slog.Error("invalid cleanup schedule", "schedule", cfg.CleanupSchedule, "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// HTTP API
	srv := api.NewServer(api.Config{
		Port:              cfg.Port,
		CORSOrigins:       cfg.CORSOrigins,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		Retention:         time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		SummaryMaxTokens:  cfg.SummaryMaxTokens,
		MaxBodyBytes:      cfg.MaxContextBytes,
	}, db, summarizer, pub)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("contextd ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("contextd stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
