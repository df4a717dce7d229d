package producer

import (
	"context"
	"log/slog"
	"time"

	"github.com/opspay/payroll_backend/internal/core/ports/repositories"
	kafkago "github.com/segmentio/kafka-go"
)

// ProcessOutboxEvents polls the outbox and publishes pending settlement
// events until ctx is cancelled. Failed publishes are retried with backoff
// driven by the outbox rows themselves.
func ProcessOutboxEvents(
	ctx context.Context,
	repo repositories.OutboxRepositoryFacade,
	writer *kafkago.Writer,
	logger *slog.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.With(slog.String("component", "kafka.producer.worker"))
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("Outbox worker started", slog.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("Outbox worker stopped")
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("Processing outbox events failed", slog.String("error", err.Error()))
			}
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo repositories.OutboxRepositoryFacade,
	writer *kafkago.Writer,
	logger *slog.Logger,
) error {
	events, err := repo.ListPending(ctx, 50)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	logger.Info("Processing pending outbox events", slog.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("Publishing outbox event failed",
				slog.String("outbox_id", event.ID),
				slog.String("event_type", event.EventType),
				slog.String("error", err.Error()),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("Marking outbox event sent failed",
				slog.String("outbox_id", event.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		logger.Info("Outbox event sent",
			slog.String("outbox_id", event.ID),
			slog.String("event_type", event.EventType),
			slog.String("topic", event.Topic),
		)
	}

	return nil
}
