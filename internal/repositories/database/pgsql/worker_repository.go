package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

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

const workerColumns = `
	worker_id, name, email, status, join_date, termination_date,
	cycle_gross_pay, tds_rate_pct, leave_balance, debt_balance, account_balance,
	bank_name, account_number, ifsc, pan,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxWorkerRepository struct {
	BaseRepository
}

// newPgxWorkerRepository creates a new repository for worker data.
func newPgxWorkerRepository(pool *pgxpool.Pool) portsrepo.WorkerRepositoryWithTx {
	return &PgxWorkerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkerRepository implements portsrepo.WorkerRepositoryWithTx
var _ portsrepo.WorkerRepositoryWithTx = (*PgxWorkerRepository)(nil)

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var m models.Worker
	err := row.Scan(
		&m.WorkerID,
		&m.Name,
		&m.Email,
		&m.Status,
		&m.JoinDate,
		&m.TerminationDate,
		&m.CycleGrossPay,
		&m.TDSRatePct,
		&m.LeaveBalance,
		&m.DebtBalance,
		&m.AccountBalance,
		&m.BankName,
		&m.AccountNumber,
		&m.IFSC,
		&m.PAN,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveWorker persists a new worker.
func (r *PgxWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	m := mapping.ToModelWorker(worker)
	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WorkerID, m.Name, m.Email, m.Status, m.JoinDate, m.TerminationDate,
		m.CycleGrossPay, m.TDSRatePct, m.LeaveBalance, m.DebtBalance, m.AccountBalance,
		m.BankName, m.AccountNumber, m.IFSC, m.PAN,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "worker with email "+m.Email+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert worker "+m.WorkerID, err)
	}
	return nil
}

// FindWorkerByID retrieves a worker by its ID.
func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1;`
	m, err := scanWorker(r.Pool.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find worker by ID "+workerID, err)
	}
	w := mapping.ToDomainWorker(*m)
	return &w, nil
}

// FindWorkersByIDs retrieves multiple workers by their IDs.
func (r *PgxWorkerRepository) FindWorkersByIDs(ctx context.Context, workerIDs []string) (map[string]domain.Worker, error) {
	if len(workerIDs) == 0 {
		return map[string]domain.Worker{}, nil
	}
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, workerIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workers by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Worker, len(workerIDs))
	for rows.Next() {
		m, err := scanWorker(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan worker row", err)
		}
		result[m.WorkerID] = mapping.ToDomainWorker(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating worker rows", err)
	}
	return result, nil
}

// ListWorkers retrieves a paginated list of workers using token-based pagination.
func (r *PgxWorkerRepository) ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + workerColumns + ` FROM workers`
	orderByClause := `ORDER BY created_at DESC, worker_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + ` WHERE (created_at, worker_id) < ($1, $2) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query workers", err)
	}
	defer rows.Close()

	workers := make([]models.Worker, 0, fetchLimit)
	for rows.Next() {
		m, err := scanWorker(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan worker row", err)
		}
		workers = append(workers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating worker rows", err)
	}

	var nextTokenVal *string
	if len(workers) > limit {
		last := workers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.WorkerID)
		nextTokenVal = &token
		workers = workers[:limit]
	}

	result := make([]domain.Worker, len(workers))
	for i, m := range workers {
		result[i] = mapping.ToDomainWorker(m)
	}
	return result, nextTokenVal, nil
}

// ListEligibleWorkers retrieves workers that can be included in a run
// covering the given pay period. The same filter rules as
// domain.Worker.EligibleForRun, expressed in SQL.
func (r *PgxWorkerRepository) ListEligibleWorkers(ctx context.Context, periodStart time.Time, runDate time.Time) ([]domain.Worker, error) {
	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE join_date <= $1
		  AND (status = 'ACTIVE' OR (status = 'TERMINATED' AND termination_date > $2))
		ORDER BY created_at, worker_id;
	`
	rows, err := r.Pool.Query(ctx, query, runDate, periodStart)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query eligible workers", err)
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		m, err := scanWorker(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan worker row", err)
		}
		result = append(result, mapping.ToDomainWorker(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating worker rows", err)
	}
	return result, nil
}

// UpdateWorker updates an existing worker's details.
func (r *PgxWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	m := mapping.ToModelWorker(worker)
	query := `
		UPDATE workers
		SET name = $2, email = $3, status = $4, termination_date = $5,
		    cycle_gross_pay = $6, tds_rate_pct = $7,
		    bank_name = $8, account_number = $9, ifsc = $10, pan = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE worker_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.WorkerID, m.Name, m.Email, m.Status, m.TerminationDate,
		m.CycleGrossPay, m.TDSRatePct,
		m.BankName, m.AccountNumber, m.IFSC, m.PAN,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update worker "+m.WorkerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateWorker marks a worker as inactive.
func (r *PgxWorkerRepository) DeactivateWorker(ctx context.Context, workerID string, actor string, now time.Time) error {
	query := `
		UPDATE workers
		SET status = 'INACTIVE', last_updated_at = $2, last_updated_by = $3
		WHERE worker_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, workerID, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate worker "+workerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindWorkersByIDsForUpdate selects workers and locks their rows for update
// within a transaction. Missing IDs surface as ErrNotFound.
func (r *PgxWorkerRepository) FindWorkersByIDsForUpdate(ctx context.Context, tx pgx.Tx, workerIDs []string) (map[string]domain.Worker, error) {
	if len(workerIDs) == 0 {
		return map[string]domain.Worker{}, nil
	}
	// Lock in a deterministic order to avoid deadlocks between concurrent settlements.
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = ANY($1) ORDER BY worker_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, workerIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock workers for update", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Worker, len(workerIDs))
	for rows.Next() {
		m, err := scanWorker(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked worker row", err)
		}
		result[m.WorkerID] = mapping.ToDomainWorker(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked worker rows", err)
	}
	for _, id := range workerIDs {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewNotFoundError("worker " + id + " not found")
		}
	}
	return result, nil
}

// UpdateAccountBalanceInTx adjusts a worker's account balance by delta and
// returns the resulting balance.
func (r *PgxWorkerRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	return r.updateBalanceColumn(ctx, tx, "account_balance", workerID, delta, actor, now)
}

// UpdateLeaveBalanceInTx adjusts a worker's leave balance by deltaDays and
// returns the resulting balance.
func (r *PgxWorkerRepository) UpdateLeaveBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, deltaDays decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	return r.updateBalanceColumn(ctx, tx, "leave_balance", workerID, deltaDays, actor, now)
}

// UpdateDebtBalanceInTx adjusts a worker's debt balance by delta and returns
// the resulting balance.
func (r *PgxWorkerRepository) UpdateDebtBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	return r.updateBalanceColumn(ctx, tx, "debt_balance", workerID, delta, actor, now)
}

func (r *PgxWorkerRepository) updateBalanceColumn(ctx context.Context, tx pgx.Tx, column string, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE workers
		SET ` + column + ` = ` + column + ` + $2, last_updated_at = $3, last_updated_by = $4
		WHERE worker_id = $1
		RETURNING ` + column + `;
	`
	var after decimal.Decimal
	err := tx.QueryRow(ctx, query, workerID, delta, now, actor).Scan(&after)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError("worker " + workerID + " not found")
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to update "+column+" for worker "+workerID, err)
	}
	return after, nil
}
