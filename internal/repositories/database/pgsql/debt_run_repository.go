package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/models"
	"github.com/opspay/payroll_backend/internal/utils/mapping"
	"github.com/opspay/payroll_backend/internal/utils/pagination"
)

const debtRunColumns = `
	debt_run_id, run_date, status, total_amount, total_tds, total_net, payment_count,
	paid_at, paid_by, created_at, created_by, last_updated_at, last_updated_by
`

const debtPaymentColumns = `
	debt_payment_id, debt_run_id, worker_id, status, amount, tds, net_amount,
	snap_bank_name, snap_account_number, snap_ifsc, snap_pan, snap_tds_rate_pct,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxDebtRunRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryFacade
	taxRepo    portsrepo.TaxPeriodRepositoryFacade
	outboxRepo portsrepo.OutboxRepositoryFacade
}

// newPgxDebtRunRepository creates a new repository for debt run data.
func newPgxDebtRunRepository(
	pool *pgxpool.Pool,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	taxRepo portsrepo.TaxPeriodRepositoryFacade,
	outboxRepo portsrepo.OutboxRepositoryFacade,
) portsrepo.DebtRunRepositoryWithTx {
	return &PgxDebtRunRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
		taxRepo:        taxRepo,
		outboxRepo:     outboxRepo,
	}
}

// Ensure PgxDebtRunRepository implements portsrepo.DebtRunRepositoryWithTx
var _ portsrepo.DebtRunRepositoryWithTx = (*PgxDebtRunRepository)(nil)

func scanDebtRun(row pgx.Row) (*models.DebtRun, error) {
	var m models.DebtRun
	err := row.Scan(
		&m.DebtRunID, &m.RunDate, &m.Status, &m.TotalAmount, &m.TotalTDS, &m.TotalNet, &m.PaymentCount,
		&m.PaidAt, &m.PaidBy, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanDebtPayment(row pgx.Row) (*models.DebtPayment, error) {
	var m models.DebtPayment
	err := row.Scan(
		&m.DebtPaymentID, &m.DebtRunID, &m.WorkerID, &m.Status, &m.Amount, &m.TDS, &m.NetAmount,
		&m.SnapBankName, &m.SnapAccountNumber, &m.SnapIFSC, &m.SnapPAN, &m.SnapTDSRatePct,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDebtRun persists a run and its payments. Effects, when non-empty, are
// posted in the same transaction (the default posting policy decrements debt
// balances at creation).
func (r *PgxDebtRunRepository) SaveDebtRun(ctx context.Context, run domain.DebtRun, effects []portsrepo.PaymentEffects, actor string) error {
	var tx pgx.Tx
	var err error
	if len(effects) > 0 {
		tx, err = r.BeginSerializable(ctx)
	} else {
		tx, err = r.Begin(ctx)
	}
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDebtRun(run)
	runQuery := `
		INSERT INTO debt_runs (` + debtRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, runQuery,
		m.DebtRunID, m.RunDate, m.Status, m.TotalAmount, m.TotalTDS, m.TotalNet, m.PaymentCount,
		m.PaidAt, m.PaidBy, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert debt run "+m.DebtRunID, err)
	}

	paymentQuery := `
		INSERT INTO debt_payments (` + debtPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, p := range run.Payments {
		mp := mapping.ToModelDebtPayment(p)
		batch.Queue(paymentQuery,
			mp.DebtPaymentID, mp.DebtRunID, mp.WorkerID, mp.Status, mp.Amount, mp.TDS, mp.NetAmount,
			mp.SnapBankName, mp.SnapAccountNumber, mp.SnapIFSC, mp.SnapPAN, mp.SnapTDSRatePct,
			mp.CreatedAt, mp.CreatedBy, mp.LastUpdatedAt, mp.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert debt payments for run "+m.DebtRunID, err)
	}

	for _, eff := range effects {
		if _, err := applyEffectInTx(ctx, tx, r.ledgerRepo, eff, actor); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindDebtRunByID retrieves a debt run with its payments.
func (r *PgxDebtRunRepository) FindDebtRunByID(ctx context.Context, runID string) (*domain.DebtRun, error) {
	query := `SELECT ` + debtRunColumns + ` FROM debt_runs WHERE debt_run_id = $1;`
	m, err := scanDebtRun(r.Pool.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt run by ID "+runID, err)
	}

	paymentsQuery := `SELECT ` + debtPaymentColumns + ` FROM debt_payments WHERE debt_run_id = $1 ORDER BY created_at, debt_payment_id;`
	rows, err := r.Pool.Query(ctx, paymentsQuery, runID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debt payments for run "+runID, err)
	}
	defer rows.Close()

	var payments []models.DebtPayment
	for rows.Next() {
		mp, err := scanDebtPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt payment row for run "+runID, err)
		}
		payments = append(payments, *mp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt payment rows for run "+runID, err)
	}

	run := mapping.ToDomainDebtRun(*m)
	run.Payments = mapping.ToDomainDebtPaymentSlice(payments)
	return &run, nil
}

// ListDebtRuns retrieves a paginated list of debt runs, newest first.
func (r *PgxDebtRunRepository) ListDebtRuns(ctx context.Context, limit int, nextToken *string) ([]domain.DebtRun, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + debtRunColumns + ` FROM debt_runs`
	orderByClause := `ORDER BY created_at DESC, debt_run_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` WHERE (created_at, debt_run_id) < ($1, $2) ` + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query debt runs", err)
	}
	defer rows.Close()

	runs := make([]models.DebtRun, 0, fetchLimit)
	for rows.Next() {
		m, err := scanDebtRun(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan debt run row", err)
		}
		runs = append(runs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating debt run rows", err)
	}

	var nextTokenVal *string
	if len(runs) > limit {
		last := runs[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DebtRunID)
		nextTokenVal = &token
		runs = runs[:limit]
	}

	result := make([]domain.DebtRun, len(runs))
	for i, m := range runs {
		result[i] = mapping.ToDomainDebtRun(m)
	}
	return result, nextTokenVal, nil
}

// FindDebtPaymentByID retrieves a debt payment by its ID.
func (r *PgxDebtRunRepository) FindDebtPaymentByID(ctx context.Context, paymentID string) (*domain.DebtPayment, error) {
	query := `SELECT ` + debtPaymentColumns + ` FROM debt_payments WHERE debt_payment_id = $1;`
	m, err := scanDebtPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt payment by ID "+paymentID, err)
	}
	p := mapping.ToDomainDebtPayment(*m)
	return &p, nil
}

// UpdateDebtRunStatus updates a run's status and timestamps without touching balances.
func (r *PgxDebtRunRepository) UpdateDebtRunStatus(ctx context.Context, run domain.DebtRun, actor string, now time.Time) error {
	m := mapping.ToModelDebtRun(run)
	query := `
		UPDATE debt_runs
		SET status = $2, paid_at = $3, paid_by = $4, last_updated_at = $5, last_updated_by = $6
		WHERE debt_run_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.DebtRunID, m.Status, m.PaidAt, m.PaidBy, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of debt run "+m.DebtRunID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDebtRunRepository) lockDebtRun(ctx context.Context, tx pgx.Tx, runID string) (*models.DebtRun, error) {
	query := `SELECT ` + debtRunColumns + ` FROM debt_runs WHERE debt_run_id = $1 FOR UPDATE;`
	m, err := scanDebtRun(tx.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("debt run " + runID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock debt run "+runID, err)
	}
	return m, nil
}

// CancelDebtRun marks the run cancelled and reverses any creation-posted effects.
func (r *PgxDebtRunRepository) CancelDebtRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.lockDebtRun(ctx, tx, params.RunID); err != nil {
		return err
	}

	for _, eff := range params.Effects {
		if _, err := reverseEffectInTx(ctx, tx, r.ledgerRepo, eff, params.Actor, params.Now); err != nil {
			return err
		}
	}

	runQuery := `
		UPDATE debt_runs
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_run_id = $1;
	`
	if _, err := tx.Exec(ctx, runQuery, params.RunID, string(domain.DebtRunCancelled), params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to cancel debt run "+params.RunID, err)
	}
	paymentsQuery := `
		UPDATE debt_payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_run_id = $1;
	`
	if _, err := tx.Exec(ctx, paymentsQuery, params.RunID, string(domain.PaymentFailed), params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to fail debt payments of run "+params.RunID, err)
	}

	return r.Commit(ctx, tx)
}

// SettleDebtRun atomically marks the run paid and applies every payment's
// effects, with the same idempotency gate as payroll settlement.
func (r *PgxDebtRunRepository) SettleDebtRun(ctx context.Context, params portsrepo.SettleRunParams) (*portsrepo.SettleResult, error) {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockDebtRun(ctx, tx, params.RunID)
	if err != nil {
		return nil, err
	}
	if domain.DebtRunStatus(locked.Status) == domain.DebtRunPaid {
		return nil, apperrors.NewAppError(409, "debt run "+params.RunID+" is already paid", apperrors.ErrConflict)
	}

	result := &portsrepo.SettleResult{}
	for _, eff := range params.Effects {
		posted, err := applyEffectInTx(ctx, tx, r.ledgerRepo, eff, params.Actor)
		if err != nil {
			return nil, err
		}
		if posted {
			result.Posted = append(result.Posted, eff.SourceID)
		} else {
			result.Skipped = append(result.Skipped, eff.SourceID)
		}

		if err := r.taxRepo.ApplyDeltaInTx(ctx, tx, params.TaxYear, params.TaxMonth, eff.WorkerID, eff.TaxGross, eff.TaxTDS, eff.TaxNet, 1, params.Actor, params.Now); err != nil {
			return nil, err
		}
	}

	runQuery := `
		UPDATE debt_runs
		SET status = $2, paid_at = $3, paid_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE debt_run_id = $1;
	`
	if _, err := tx.Exec(ctx, runQuery, params.RunID, string(domain.DebtRunPaid), params.Now, params.Actor); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark debt run "+params.RunID+" paid", err)
	}
	paymentsQuery := `
		UPDATE debt_payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_run_id = $1;
	`
	if _, err := tx.Exec(ctx, paymentsQuery, params.RunID, string(domain.PaymentPaid), params.Now, params.Actor); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark debt payments of run "+params.RunID+" paid", err)
	}

	if len(params.Events) > 0 {
		if err := r.outboxRepo.StageInTx(ctx, tx, params.Events); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// RevertPaidDebtRun atomically moves a paid debt run back to pending and
// reverses every effect the settlement applied.
func (r *PgxDebtRunRepository) RevertPaidDebtRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockDebtRun(ctx, tx, params.RunID)
	if err != nil {
		return err
	}
	if domain.DebtRunStatus(locked.Status) != domain.DebtRunPaid {
		return apperrors.NewAppError(409, "debt run "+params.RunID+" is not paid", apperrors.ErrConflict)
	}

	for _, eff := range params.Effects {
		reversed, err := reverseEffectInTx(ctx, tx, r.ledgerRepo, eff, params.Actor, params.Now)
		if err != nil {
			return err
		}
		if !reversed {
			continue
		}
		if err := r.taxRepo.ApplyDeltaInTx(ctx, tx, params.TaxYear, params.TaxMonth, eff.WorkerID, eff.TaxGross.Neg(), eff.TaxTDS.Neg(), eff.TaxNet.Neg(), -1, params.Actor, params.Now); err != nil {
			return err
		}
	}

	runQuery := `
		UPDATE debt_runs
		SET status = $2, paid_at = NULL, paid_by = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE debt_run_id = $1;
	`
	if _, err := tx.Exec(ctx, runQuery, params.RunID, string(domain.DebtRunPending), params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to revert debt run "+params.RunID, err)
	}
	paymentsQuery := `
		UPDATE debt_payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_run_id = $1;
	`
	if _, err := tx.Exec(ctx, paymentsQuery, params.RunID, string(domain.PaymentPending), params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to revert debt payments of run "+params.RunID, err)
	}

	return r.Commit(ctx, tx)
}
