package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/models"
	"github.com/opspay/payroll_backend/internal/utils/mapping"
	"github.com/opspay/payroll_backend/internal/utils/pagination"
)

const taxRecordColumns = `
	record_id, worker_id, year, month, total_gross, total_tds, total_net, payment_count, filing_status,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxTaxPeriodRepository struct {
	BaseRepository
}

// newPgxTaxPeriodRepository creates a new repository for monthly tax records.
func newPgxTaxPeriodRepository(pool *pgxpool.Pool) portsrepo.TaxPeriodRepositoryWithTx {
	return &PgxTaxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTaxPeriodRepository implements portsrepo.TaxPeriodRepositoryWithTx
var _ portsrepo.TaxPeriodRepositoryWithTx = (*PgxTaxPeriodRepository)(nil)

func scanTaxRecord(row pgx.Row) (*models.TaxPeriodRecord, error) {
	var m models.TaxPeriodRecord
	err := row.Scan(
		&m.RecordID, &m.WorkerID, &m.Year, &m.Month,
		&m.TotalGross, &m.TotalTDS, &m.TotalNet, &m.PaymentCount, &m.FilingStatus,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindRecord retrieves the tax record for a worker and month, if any.
func (r *PgxTaxPeriodRepository) FindRecord(ctx context.Context, year int, month time.Month, workerID string) (*domain.TaxPeriodRecord, error) {
	query := `SELECT ` + taxRecordColumns + ` FROM tax_period_records WHERE year = $1 AND month = $2 AND worker_id = $3;`
	m, err := scanTaxRecord(r.Pool.QueryRow(ctx, query, year, int(month), workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tax record for worker "+workerID, err)
	}
	rec := mapping.ToDomainTaxPeriodRecord(*m)
	return &rec, nil
}

// FindRecordByID retrieves a tax period record by its primary key.
func (r *PgxTaxPeriodRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.TaxPeriodRecord, error) {
	query := `SELECT ` + taxRecordColumns + ` FROM tax_period_records WHERE record_id = $1;`
	m, err := scanTaxRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tax record "+recordID, err)
	}
	rec := mapping.ToDomainTaxPeriodRecord(*m)
	return &rec, nil
}

// ListRecordsByPeriod retrieves all records of a month, ordered by worker.
func (r *PgxTaxPeriodRepository) ListRecordsByPeriod(ctx context.Context, year int, month time.Month) ([]domain.TaxPeriodRecord, error) {
	query := `SELECT ` + taxRecordColumns + ` FROM tax_period_records WHERE year = $1 AND month = $2 ORDER BY worker_id;`
	rows, err := r.Pool.Query(ctx, query, year, int(month))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax records for period", err)
	}
	defer rows.Close()

	var result []domain.TaxPeriodRecord
	for rows.Next() {
		m, err := scanTaxRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax record row", err)
		}
		result = append(result, mapping.ToDomainTaxPeriodRecord(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax record rows", err)
	}
	return result, nil
}

// ListRecordsByWorker retrieves a worker's records across months, newest first.
func (r *PgxTaxPeriodRepository) ListRecordsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.TaxPeriodRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + taxRecordColumns + ` FROM tax_period_records WHERE worker_id = $1`
	orderByClause := `ORDER BY created_at DESC, record_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` AND (created_at, record_id) < ($2, $3) ` + orderByClause + ` LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, workerID, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, workerID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query tax records for worker "+workerID, err)
	}
	defer rows.Close()

	records := make([]models.TaxPeriodRecord, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTaxRecord(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan tax record row", err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating tax record rows", err)
	}

	var nextTokenVal *string
	if len(records) > limit {
		last := records[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RecordID)
		nextTokenVal = &token
		records = records[:limit]
	}

	result := make([]domain.TaxPeriodRecord, len(records))
	for i, m := range records {
		result[i] = mapping.ToDomainTaxPeriodRecord(m)
	}
	return result, nextTokenVal, nil
}

// ApplyDeltaInTx folds a settlement (or its reversal) into the worker's
// record for the month. The row is locked for the whole read-modify-write,
// created on first use, and deleted when its payment count drops to zero.
// A delta that would leave any total negative is rejected as a conflict.
func (r *PgxTaxPeriodRepository) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, year int, month time.Month, workerID string, gross, tds, net decimal.Decimal, paymentCountDelta int, actor string, now time.Time) error {
	lockQuery := `SELECT ` + taxRecordColumns + ` FROM tax_period_records WHERE year = $1 AND month = $2 AND worker_id = $3 FOR UPDATE;`
	m, err := scanTaxRecord(tx.QueryRow(ctx, lockQuery, year, int(month), workerID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(500, "failed to lock tax record for worker "+workerID, err)
		}
		if paymentCountDelta <= 0 {
			// Reversal against a record that no longer exists.
			return apperrors.NewNotFoundError("tax record for worker " + workerID + " not found")
		}
		insertQuery := `
			INSERT INTO tax_period_records (` + taxRecordColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, insertQuery,
			uuid.NewString(), workerID, year, int(month),
			gross, tds, net, paymentCountDelta, string(domain.FilingPending),
			now, actor, now, actor,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert tax record for worker "+workerID, err)
		}
		return nil
	}

	newCount := m.PaymentCount + paymentCountDelta
	if newCount <= 0 {
		deleteQuery := `DELETE FROM tax_period_records WHERE record_id = $1;`
		if _, err := tx.Exec(ctx, deleteQuery, m.RecordID); err != nil {
			return apperrors.NewAppError(500, "failed to delete emptied tax record "+m.RecordID, err)
		}
		return nil
	}

	newGross := m.TotalGross.Add(gross)
	newTDS := m.TotalTDS.Add(tds)
	newNet := m.TotalNet.Add(net)
	if newGross.IsNegative() || newTDS.IsNegative() || newNet.IsNegative() {
		return apperrors.NewAppError(409, "delta would leave tax record "+m.RecordID+" negative", apperrors.ErrConflict)
	}

	updateQuery := `
		UPDATE tax_period_records
		SET total_gross = $2, total_tds = $3, total_net = $4,
		    payment_count = $5, last_updated_at = $6, last_updated_by = $7
		WHERE record_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery, m.RecordID, newGross, newTDS, newNet, newCount, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tax record "+m.RecordID, err)
	}
	return nil
}

// UpdateFilingStatus advances the filing status of a worker's record.
func (r *PgxTaxPeriodRepository) UpdateFilingStatus(ctx context.Context, year int, month time.Month, workerID string, status domain.FilingStatus, actor string, now time.Time) error {
	query := `
		UPDATE tax_period_records
		SET filing_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE year = $1 AND month = $2 AND worker_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, year, int(month), workerID, string(status), now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update filing status for worker "+workerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
