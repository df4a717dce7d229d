package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/models"
	"github.com/opspay/payroll_backend/internal/utils/pagination"
)

const auditColumns = `
	audit_log_id, actor, action, entity_type, entity_id, old_values, new_values, created_at
`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditInsertQuery = `
	INSERT INTO audit_logs (audit_log_id, actor, action, entity_type, entity_id, old_values, new_values, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// Record persists an audit log entry.
func (r *PgxAuditRepository) Record(ctx context.Context, entry domain.AuditLog) error {
	_, err := r.Pool.Exec(ctx, auditInsertQuery,
		entry.AuditLogID, entry.Actor, entry.Action, entry.EntityType, entry.EntityID,
		entry.OldValues, entry.NewValues, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log entry", err)
	}
	return nil
}

// RecordInTx persists an audit log entry within an enclosing transaction.
func (r *PgxAuditRepository) RecordInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	_, err := tx.Exec(ctx, auditInsertQuery,
		entry.AuditLogID, entry.Actor, entry.Action, entry.EntityType, entry.EntityID,
		entry.OldValues, entry.NewValues, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log entry", err)
	}
	return nil
}

// ListByEntity retrieves a paginated list of audit entries for an entity, newest first.
func (r *PgxAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + auditColumns + ` FROM audit_logs WHERE entity_type = $1 AND entity_id = $2`
	orderByClause := `ORDER BY created_at DESC, audit_log_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` AND (created_at, audit_log_id) < ($3, $4) ` + orderByClause + ` LIMIT $5;`
		rows, err = r.Pool.Query(ctx, query, entityType, entityID, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, entityType, entityID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit log for "+entityType+" "+entityID, err)
	}
	defer rows.Close()

	entries := make([]models.AuditLog, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditLog
		err := rows.Scan(
			&m.AuditLogID, &m.Actor, &m.Action, &m.EntityType, &m.EntityID,
			&m.OldValues, &m.NewValues, &m.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AuditLogID)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	result := make([]domain.AuditLog, len(entries))
	for i, m := range entries {
		result[i] = domain.AuditLog{
			AuditLogID: m.AuditLogID,
			Actor:      m.Actor,
			Action:     m.Action,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			OldValues:  m.OldValues,
			NewValues:  m.NewValues,
			CreatedAt:  m.CreatedAt,
		}
	}
	return result, nextTokenVal, nil
}
