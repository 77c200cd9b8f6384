package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/chriswiesanjaya/sun-protection/internal/adapter/http"
	kafkaadapter "github.com/chriswiesanjaya/sun-protection/internal/adapter/kafka"
	"github.com/chriswiesanjaya/sun-protection/internal/adapter/openweather"
	"github.com/chriswiesanjaya/sun-protection/internal/advisory"
	"github.com/chriswiesanjaya/sun-protection/internal/config"
	"github.com/chriswiesanjaya/sun-protection/internal/notify"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
	"github.com/chriswiesanjaya/sun-protection/internal/session"
)

func main() {
	// Best effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)
	geocoder := openweather.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
	logger.Info("openweather provider configured", "cache_size", cfg.GeocodeCacheSize, "timeout", cfg.OpenWeatherTimeout)

	// Advisory publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher advisory.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("advisory publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("advisory publishing disabled")
	}

	svc := advisory.New(geocoder, client, publisher, logger, metrics)
	sessions := session.NewStore(cfg.SessionTTL, clock, logger, metrics)
	notifier := notify.New(clock, logger, metrics)

	api := httpadapter.NewAPI(svc, sessions, notifier, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start session janitor.
	go func() {
		if err := sessions.Run(ctx); err != nil {
			logger.Error("session store error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
