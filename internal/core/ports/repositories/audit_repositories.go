package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// AuditWriter defines write operations for the audit log
type AuditWriter interface {
	// Record persists an audit log entry.
	Record(ctx context.Context, entry domain.AuditLog) error

	// RecordInTx persists an audit log entry within an enclosing transaction.
	RecordInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error
}

// AuditReader defines read operations for the audit log
type AuditReader interface {
	// ListByEntity retrieves a paginated list of audit entries for an entity, newest first.
	ListByEntity(ctx context.Context, entityType string, entityID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditRepositoryFacade combines all audit-log repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
