package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/opspay/payroll_backend/internal/messaging/kafka"
)

// OutboxWriter defines write operations for the transactional outbox
type OutboxWriter interface {
	// StageInTx persists outbox events within an enclosing transaction so that
	// they commit or roll back together with the settlement that produced them.
	StageInTx(ctx context.Context, tx pgx.Tx, events []kafka.OutboxEvent) error

	// MarkSent marks an event as delivered to the broker.
	MarkSent(ctx context.Context, eventID string) error

	// MarkFailed records a delivery failure and schedules the next retry.
	MarkFailed(ctx context.Context, eventID string, reason string) error
}

// OutboxReader defines read operations for the transactional outbox
type OutboxReader interface {
	// ListPending retrieves pending events due for delivery, oldest first.
	ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error)
}

// OutboxRepositoryFacade combines all outbox repository interfaces
type OutboxRepositoryFacade interface {
	OutboxWriter
	OutboxReader
}
