package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/models"
	"github.com/opspay/payroll_backend/internal/utils/mapping"
	"github.com/opspay/payroll_backend/internal/utils/pagination"
)

const manualPaymentColumns = `
	manual_payment_id, worker_id, category, entry_type, gross_amount, is_taxable, tds, net_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxManualPaymentRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// newPgxManualPaymentRepository creates a new repository for manual payments.
func newPgxManualPaymentRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepositoryFacade) portsrepo.ManualPaymentRepositoryWithTx {
	return &PgxManualPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxManualPaymentRepository implements portsrepo.ManualPaymentRepositoryWithTx
var _ portsrepo.ManualPaymentRepositoryWithTx = (*PgxManualPaymentRepository)(nil)

func scanManualPayment(row pgx.Row) (*models.ManualPayment, error) {
	var m models.ManualPayment
	err := row.Scan(
		&m.ManualPaymentID, &m.WorkerID, &m.Category, &m.EntryType,
		&m.GrossAmount, &m.IsTaxable, &m.TDS, &m.NetAmount, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveManualPayment persists a manual payment and applies its effects in a
// single serializable transaction. The payment row and its ledger row commit
// or roll back together.
func (r *PgxManualPaymentRepository) SaveManualPayment(ctx context.Context, payment domain.ManualPayment, effects portsrepo.PaymentEffects, actor string) (*domain.ManualPayment, error) {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelManualPayment(payment)
	query := `
		INSERT INTO manual_payments (` + manualPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.ManualPaymentID, m.WorkerID, m.Category, m.EntryType,
		m.GrossAmount, m.IsTaxable, m.TDS, m.NetAmount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert manual payment "+m.ManualPaymentID, err)
	}

	if _, err := applyEffectInTx(ctx, tx, r.ledgerRepo, effects, actor); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindManualPaymentByID retrieves a manual payment by its ID.
func (r *PgxManualPaymentRepository) FindManualPaymentByID(ctx context.Context, paymentID string) (*domain.ManualPayment, error) {
	query := `SELECT ` + manualPaymentColumns + ` FROM manual_payments WHERE manual_payment_id = $1;`
	m, err := scanManualPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find manual payment by ID "+paymentID, err)
	}
	p := mapping.ToDomainManualPayment(*m)
	return &p, nil
}

// ListManualPaymentsByWorker retrieves a worker's manual payments, newest first.
func (r *PgxManualPaymentRepository) ListManualPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.ManualPayment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + manualPaymentColumns + ` FROM manual_payments WHERE worker_id = $1`
	orderByClause := `ORDER BY created_at DESC, manual_payment_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` AND (created_at, manual_payment_id) < ($2, $3) ` + orderByClause + ` LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, workerID, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, workerID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query manual payments for worker "+workerID, err)
	}
	defer rows.Close()

	payments := make([]models.ManualPayment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanManualPayment(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan manual payment row", err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating manual payment rows", err)
	}

	var nextTokenVal *string
	if len(payments) > limit {
		last := payments[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ManualPaymentID)
		nextTokenVal = &token
		payments = payments[:limit]
	}

	result := make([]domain.ManualPayment, len(payments))
	for i, m := range payments {
		result[i] = mapping.ToDomainManualPayment(m)
	}
	return result, nextTokenVal, nil
}
