package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beyondborders/internal/api"
	"beyondborders/internal/booking"
	"beyondborders/internal/config"
	"beyondborders/internal/database"
	"beyondborders/internal/domain"
	"beyondborders/internal/events"
	"beyondborders/internal/logging"
	"beyondborders/internal/metrics"
	"beyondborders/internal/notify"
	"beyondborders/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var sessions domain.SessionRepository
	if cfg.Redis.Address != "" {
		client := session.NewRedisClient(cfg.Redis)
		defer client.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := session.Ping(pingCtx, client)
		pingCancel()
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		sessions = session.NewRedisStore(client, cfg.SessionTTL())
	} else {
		logger.Warn().Msg("redis address is empty, using in-memory session store")
		sessions = session.NewMemoryStore(cfg.SessionTTL())
	}

	eventBus := events.NewEventBus()
	worker := notify.NewWorker(
		notify.NewLogSender(logger),
		notify.RetryPolicy{
			MaxRetries:    cfg.Notify.MaxRetries,
			InitialDelay:  time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2,
		},
		cfg.Notify.QueueSize,
		logger,
	)
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingConfirmed,
		events.EventBookingCancelled,
		events.EventBookingCompleted,
		events.EventBookingUpdated,
	} {
		eventBus.Subscribe(eventType, worker.HandleEvent)
	}
	worker.Start(ctx)

	svc := booking.NewService(db, eventBus, logger)
	resolver := session.NewResolver(sessions, db, logger)
	server := api.NewServer(*cfg, svc, resolver, logger)

	if cfg.Monitoring.PrometheusEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
			logger.Info().Str("addr", addr).Msg("Prometheus metrics listening")
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}
	worker.Wait()

	logger.Info().Msg("shutdown complete")
	return nil
}
