package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oral0005/backend-posylka/internal/application/factories/infrastructure"
	"github.com/oral0005/backend-posylka/internal/config"
	"github.com/oral0005/backend-posylka/internal/infrastructure/kafka"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
	"github.com/oral0005/backend-posylka/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Metrics server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Relay metrics listening on :9093")
		http.ListenAndServe(":9093", mux)
	}()

	infraFactory := infrastructure.NewFactory(cfg)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	outboxRepo := postgres.NewOutboxRepository(pgPool)

	producer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()

	poller := worker.NewOutboxPoller(outboxRepo, producer)

	logger.Info("Outbox relay started", "topic", cfg.Kafka.Topic)
	if err := poller.Run(ctx); err != nil {
		logger.Error("poller stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Outbox relay exiting")
}
