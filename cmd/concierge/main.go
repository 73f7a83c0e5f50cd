package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/parcelpoint/concierge/internal/advisor"
	"github.com/parcelpoint/concierge/internal/api"
	"github.com/parcelpoint/concierge/internal/config"
	"github.com/parcelpoint/concierge/internal/events"
	"github.com/parcelpoint/concierge/internal/knowledge"
	"github.com/parcelpoint/concierge/internal/openai"
	"github.com/parcelpoint/concierge/internal/profile"
	"github.com/parcelpoint/concierge/internal/pulse"
	"github.com/parcelpoint/concierge/internal/store"
)

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("concierge starting", "port", cfg.Port)

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
	slog.Info("database connected")

	// Chat model client. A missing credential fails fast, before any turn.
	if cfg.OpenAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	llm := openai.NewClient(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBase)
	slog.Info("model client ready", "model", cfg.Model)

	// Telemetry publisher (optional: the concierge runs without a broker,
	// just no turn events for the pulse generator).
	var publisher advisor.TurnPublisher
	if cfg.NatsURL != "" {
		pub, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		publisher = pub
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without turn telemetry")
	}

	// Turn service, the main pipeline.
	engine := advisor.NewEngine(llm, slog.Default())
	svc := advisor.NewService(
		profile.NewLoader(db),
		knowledge.NewRetriever(db),
		pulse.NewProvider(db),
		db,
		db,
		engine,
		publisher,
		advisor.Limits{
			History:   cfg.HistoryLimit,
			Knowledge: cfg.KnowledgeK,
			Pulse:     cfg.PulseLimit,
		},
		slog.Default(),
	)

	// HTTP API
	srv := api.NewServer(cfg.Port, svc)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("concierge ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("concierge stopped")
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
