package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opspay/payroll_backend/internal/apperrors"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/messaging/kafka"
)

// Retry backoff grows linearly with the failure count.
const outboxRetryStep = 30 * time.Second

type PgxOutboxRepository struct {
	BaseRepository
}

// newPgxOutboxRepository creates a new repository for the transactional outbox.
func newPgxOutboxRepository(pool *pgxpool.Pool) portsrepo.OutboxRepositoryFacade {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOutboxRepository implements portsrepo.OutboxRepositoryFacade
var _ portsrepo.OutboxRepositoryFacade = (*PgxOutboxRepository)(nil)

// StageInTx persists outbox events within an enclosing transaction so they
// commit or roll back together with the settlement that produced them.
func (r *PgxOutboxRepository) StageInTx(ctx context.Context, tx pgx.Tx, events []kafka.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	query := `
		INSERT INTO outbox_events (
			id, aggregate_type, aggregate_id, event_type, topic, key, payload,
			status, retry_count, next_retry_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now());
	`
	batch := &pgx.Batch{}
	for _, event := range events {
		if err := kafka.ValidateOutboxEvent(event); err != nil {
			return apperrors.NewAppError(400, "invalid outbox event", err)
		}
		batch.Queue(query,
			event.ID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, event.Key, event.Payload,
			event.Status, event.RetryCount, event.NextRetryAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to stage outbox events", err)
	}
	return nil
}

// ListPending retrieves pending events due for delivery, oldest first.
func (r *PgxOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, topic, key, payload, status, retry_count, next_retry_at
		FROM outbox_events
		WHERE status = $1 AND next_retry_at <= now()
		ORDER BY created_at
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, kafka.OutboxStatusPending, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending outbox events", err)
	}
	defer rows.Close()

	var events []kafka.OutboxEvent
	for rows.Next() {
		var e kafka.OutboxEvent
		err := rows.Scan(
			&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Topic, &e.Key, &e.Payload,
			&e.Status, &e.RetryCount, &e.NextRetryAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outbox event row", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating outbox event rows", err)
	}
	return events, nil
}

// MarkSent marks an event as delivered to the broker.
func (r *PgxOutboxRepository) MarkSent(ctx context.Context, eventID string) error {
	query := `UPDATE outbox_events SET status = $2, sent_at = now() WHERE id = $1;`
	tag, err := r.Pool.Exec(ctx, query, eventID, kafka.OutboxStatusSent)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark outbox event "+eventID+" sent", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkFailed records a delivery failure and schedules the next retry. The
// event stays pending so the worker picks it up again after the backoff.
func (r *PgxOutboxRepository) MarkFailed(ctx context.Context, eventID string, reason string) error {
	query := `
		UPDATE outbox_events
		SET retry_count = retry_count + 1,
		    last_error = $2,
		    next_retry_at = now() + make_interval(secs => $3 * (retry_count + 1)),
		    status = CASE WHEN retry_count + 1 >= 10 THEN $4 ELSE status END
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, eventID, reason, outboxRetryStep.Seconds(), kafka.OutboxStatusFailed)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark outbox event "+eventID+" failed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
