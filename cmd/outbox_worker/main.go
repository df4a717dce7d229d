package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/opspay/payroll_backend/internal/messaging/kafka/producer"
	"github.com/opspay/payroll_backend/internal/platform/config"
	"github.com/opspay/payroll_backend/internal/repositories/database/pgsql"
	"github.com/opspay/payroll_backend/pkg/database"
)

// The outbox worker publishes settlement events staged by the API server.
// It runs as its own process so a Kafka outage never blocks settlement.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			logger.Error("Error closing Kafka writer", slog.String("error", cerr.Error()))
		}
	}()

	pollInterval := time.Duration(cfg.OutboxPollSeconds) * time.Second
	producer.ProcessOutboxEvents(ctx, repos.OutboxRepo, writer, logger, pollInterval)
}
