package pgsql

import (
	"context"
	"errors"
	"strconv"
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

const transactionColumns = `
	transaction_id, worker_id, entry_type, category, amount, balance_after,
	description, source_type, source_id, reverses_transaction_id,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxLedgerRepository struct {
	BaseRepository
	workerRepo portsrepo.WorkerRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for the account ledger and
// the leave/debt audit trails.
func newPgxLedgerRepository(pool *pgxpool.Pool, workerRepo portsrepo.WorkerRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		workerRepo:     workerRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func scanTransaction(row pgx.Row) (*models.AccountTransaction, error) {
	var m models.AccountTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.WorkerID,
		&m.EntryType,
		&m.Category,
		&m.Amount,
		&m.BalanceAfter,
		&m.Description,
		&m.SourceType,
		&m.SourceID,
		&m.ReversesTransactionID,
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

// PostInTx appends ledger rows for a single worker within a transaction.
// The worker row is locked first, then the running balance is threaded
// through the rows in order and written back once.
func (r *PgxLedgerRepository) PostInTx(ctx context.Context, tx pgx.Tx, workerID string, entries []domain.AccountTransaction) ([]domain.AccountTransaction, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	locked, err := r.workerRepo.FindWorkersByIDsForUpdate(ctx, tx, []string{workerID})
	if err != nil {
		return nil, err
	}
	worker := locked[workerID]
	running := worker.AccountBalance

	insertQuery := `
		INSERT INTO account_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	batch := &pgx.Batch{}
	posted := make([]domain.AccountTransaction, len(entries))
	for i, entry := range entries {
		if entry.Amount.IsNegative() {
			return nil, apperrors.NewAppError(400, "ledger amount must be non-negative", apperrors.ErrValidation)
		}
		if !entry.Category.Valid() {
			return nil, apperrors.NewAppError(400, "unknown ledger category "+string(entry.Category), apperrors.ErrValidation)
		}
		signed, err := entry.SignedAmount()
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid ledger entry", err)
		}
		running = running.Add(signed)

		entry.WorkerID = workerID
		if entry.TransactionID == "" {
			entry.TransactionID = uuid.NewString()
		}
		entry.BalanceAfter = running
		posted[i] = entry

		m := mapping.ToModelAccountTransaction(entry)
		batch.Queue(insertQuery,
			m.TransactionID, m.WorkerID, m.EntryType, m.Category, m.Amount, m.BalanceAfter,
			m.Description, m.SourceType, m.SourceID, m.ReversesTransactionID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger rows for worker "+workerID, err)
	}

	delta := running.Sub(worker.AccountBalance)
	last := posted[len(posted)-1]
	if _, err := r.workerRepo.UpdateAccountBalanceInTx(ctx, tx, workerID, delta, last.CreatedBy, last.CreatedAt); err != nil {
		return nil, err
	}

	return posted, nil
}

// SourcePosted reports whether a source currently has effective ledger rows.
// A forward row is effective until a reversal row references it.
func (r *PgxLedgerRepository) SourcePosted(ctx context.Context, tx pgx.Tx, sourceType domain.SourceType, sourceID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM account_transactions t
			WHERE t.source_type = $1 AND t.source_id = $2
			  AND t.reverses_transaction_id IS NULL
			  AND NOT EXISTS (
				SELECT 1 FROM account_transactions rev
				WHERE rev.reverses_transaction_id = t.transaction_id
			  )
		);
	`
	var posted bool
	if err := tx.QueryRow(ctx, query, string(sourceType), sourceID).Scan(&posted); err != nil {
		return false, apperrors.NewAppError(500, "failed to check posted state for source "+sourceID, err)
	}
	return posted, nil
}

// FindPostedBySource retrieves the effective (non-reversed) ledger rows for a
// source, oldest first.
func (r *PgxLedgerRepository) FindPostedBySource(ctx context.Context, tx pgx.Tx, sourceType domain.SourceType, sourceID string) ([]domain.AccountTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM account_transactions t
		WHERE t.source_type = $1 AND t.source_id = $2
		  AND t.reverses_transaction_id IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM account_transactions rev
			WHERE rev.reverses_transaction_id = t.transaction_id
		  )
		ORDER BY t.created_at, t.transaction_id;
	`
	rows, err := tx.Query(ctx, query, string(sourceType), sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted rows for source "+sourceID, err)
	}
	defer rows.Close()

	var result []models.AccountTransaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}
	return mapping.ToDomainAccountTransactionSlice(result), nil
}

// FindTransactionByID retrieves a ledger transaction by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM account_transactions t WHERE t.transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	t := mapping.ToDomainAccountTransaction(*m)
	return &t, nil
}

// ListTransactionsByWorker retrieves a paginated ledger history for a worker,
// newest first, using token-based pagination.
func (r *PgxLedgerRepository) ListTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.AccountTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM account_transactions t WHERE t.worker_id = $1`
	orderByClause := `ORDER BY t.created_at DESC, t.transaction_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{workerID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + ` AND (t.created_at, t.transaction_id) < ($2, $3) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, workerID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for worker "+workerID, err)
	}
	defer rows.Close()

	txns := make([]models.AccountTransaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return mapping.ToDomainAccountTransactionSlice(txns), nextTokenVal, nil
}

// ApplyLeaveDeltaInTx adjusts a worker's leave balance and records the audit
// row within a transaction.
func (r *PgxLedgerRepository) ApplyLeaveDeltaInTx(ctx context.Context, tx pgx.Tx, workerID string, deltaDays decimal.Decimal, paymentID *string, description string, actor string) (*domain.LeaveTransaction, error) {
	now := time.Now().UTC()
	after, err := r.workerRepo.UpdateLeaveBalanceInTx(ctx, tx, workerID, deltaDays, actor, now)
	if err != nil {
		return nil, err
	}

	entry := domain.LeaveTransaction{
		LeaveTransactionID: uuid.NewString(),
		WorkerID:           workerID,
		DeltaDays:          deltaDays,
		BalanceAfter:       after,
		PaymentID:          paymentID,
		Description:        description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	m := mapping.ToModelLeaveTransaction(entry)
	query := `
		INSERT INTO leave_transactions (
			leave_transaction_id, worker_id, delta_days, balance_after, payment_id, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.LeaveTransactionID, m.WorkerID, m.DeltaDays, m.BalanceAfter, m.PaymentID, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert leave transaction for worker "+workerID, err)
	}
	return &entry, nil
}

// ApplyDebtDeltaInTx adjusts a worker's debt balance and records the audit
// row within a transaction.
func (r *PgxLedgerRepository) ApplyDebtDeltaInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, sourceType *domain.SourceType, sourceID *string, description string, actor string) (*domain.DebtTransaction, error) {
	now := time.Now().UTC()
	after, err := r.workerRepo.UpdateDebtBalanceInTx(ctx, tx, workerID, delta, actor, now)
	if err != nil {
		return nil, err
	}

	entry := domain.DebtTransaction{
		DebtTransactionID: uuid.NewString(),
		WorkerID:          workerID,
		Delta:             delta,
		BalanceAfter:      after,
		SourceType:        sourceType,
		SourceID:          sourceID,
		Description:       description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	m := mapping.ToModelDebtTransaction(entry)
	query := `
		INSERT INTO debt_transactions (
			debt_transaction_id, worker_id, delta, balance_after, source_type, source_id, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.DebtTransactionID, m.WorkerID, m.Delta, m.BalanceAfter, m.SourceType, m.SourceID, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert debt transaction for worker "+workerID, err)
	}
	return &entry, nil
}

// ListLeaveTransactionsByWorker retrieves a worker's leave audit trail, newest first.
func (r *PgxLedgerRepository) ListLeaveTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.LeaveTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT leave_transaction_id, worker_id, delta_days, balance_after, payment_id, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM leave_transactions
		WHERE worker_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, leave_transaction_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` AND (created_at, leave_transaction_id) < ($2, $3) ` + orderByClause + ` LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, workerID, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, workerID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query leave transactions for worker "+workerID, err)
	}
	defer rows.Close()

	txns := make([]models.LeaveTransaction, 0, fetchLimit)
	for rows.Next() {
		var m models.LeaveTransaction
		err := rows.Scan(
			&m.LeaveTransactionID, &m.WorkerID, &m.DeltaDays, &m.BalanceAfter, &m.PaymentID, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan leave transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating leave transaction rows", err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.LeaveTransactionID)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return mapping.ToDomainLeaveTransactionSlice(txns), nextTokenVal, nil
}

// ListDebtTransactionsByWorker retrieves a worker's debt audit trail, newest first.
func (r *PgxLedgerRepository) ListDebtTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.DebtTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT debt_transaction_id, worker_id, delta, balance_after, source_type, source_id, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM debt_transactions
		WHERE worker_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, debt_transaction_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` AND (created_at, debt_transaction_id) < ($2, $3) ` + orderByClause + ` LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, workerID, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, workerID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query debt transactions for worker "+workerID, err)
	}
	defer rows.Close()

	txns := make([]models.DebtTransaction, 0, fetchLimit)
	for rows.Next() {
		var m models.DebtTransaction
		err := rows.Scan(
			&m.DebtTransactionID, &m.WorkerID, &m.Delta, &m.BalanceAfter, &m.SourceType, &m.SourceID, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan debt transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating debt transaction rows", err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DebtTransactionID)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return mapping.ToDomainDebtTransactionSlice(txns), nextTokenVal, nil
}
