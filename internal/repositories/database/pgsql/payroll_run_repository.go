package pgsql

import (
	"context"
	"errors"
	"strconv"
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

const runColumns = `
	run_id, run_date, period_start, status, generated,
	total_gross, total_tds, total_net, total_leave_cashout, total_debt_cleared, total_recovered,
	payment_count, processed_at, processed_by, paid_at, paid_by, superseded_by_run_id,
	created_at, created_by, last_updated_at, last_updated_by
`

const paymentColumns = `
	payment_id, run_id, worker_id, status, leave_days,
	gross, leave_cashout, debt_cleared, taxable_amount, tds, net_before_recovery, recovered, net_amount,
	snap_bank_name, snap_account_number, snap_ifsc, snap_pan, snap_tds_rate_pct,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxPayrollRunRepository struct {
	BaseRepository
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	taxRepo      portsrepo.TaxPeriodRepositoryFacade
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	outboxRepo   portsrepo.OutboxRepositoryFacade
}

// newPgxPayrollRunRepository creates a new repository for payroll run data.
// Settlement spans the ledger, tax and schedule repositories inside one
// serializable transaction, so those are injected here.
func newPgxPayrollRunRepository(
	pool *pgxpool.Pool,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	taxRepo portsrepo.TaxPeriodRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	outboxRepo portsrepo.OutboxRepositoryFacade,
) portsrepo.PayrollRunRepositoryWithTx {
	return &PgxPayrollRunRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
		taxRepo:        taxRepo,
		scheduleRepo:   scheduleRepo,
		outboxRepo:     outboxRepo,
	}
}

// Ensure PgxPayrollRunRepository implements portsrepo.PayrollRunRepositoryWithTx
var _ portsrepo.PayrollRunRepositoryWithTx = (*PgxPayrollRunRepository)(nil)

func scanRun(row pgx.Row) (*models.PayrollRun, error) {
	var m models.PayrollRun
	err := row.Scan(
		&m.RunID, &m.RunDate, &m.PeriodStart, &m.Status, &m.Generated,
		&m.TotalGross, &m.TotalTDS, &m.TotalNet, &m.TotalLeaveCashout, &m.TotalDebtCleared, &m.TotalRecovered,
		&m.PaymentCount, &m.ProcessedAt, &m.ProcessedBy, &m.PaidAt, &m.PaidBy, &m.SupersededByRunID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.RunID, &m.WorkerID, &m.Status, &m.LeaveDays,
		&m.Gross, &m.LeaveCashout, &m.DebtCleared, &m.TaxableAmount, &m.TDS, &m.NetBeforeRecovery, &m.Recovered, &m.NetAmount,
		&m.SnapBankName, &m.SnapAccountNumber, &m.SnapIFSC, &m.SnapPAN, &m.SnapTDSRatePct,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRun persists a run and its payments. Effects, when non-empty, are
// posted in the same transaction (posting at creation).
func (r *PgxPayrollRunRepository) SaveRun(ctx context.Context, run domain.PayrollRun, effects []portsrepo.PaymentEffects, actor string) error {
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

	if err := r.insertRunInTx(ctx, tx, run); err != nil {
		return err
	}

	for _, eff := range effects {
		if _, err := applyEffectInTx(ctx, tx, r.ledgerRepo, eff, actor); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPayrollRunRepository) insertRunInTx(ctx context.Context, tx pgx.Tx, run domain.PayrollRun) error {
	m := mapping.ToModelPayrollRun(run)
	query := `
		INSERT INTO payroll_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		m.RunID, m.RunDate, m.PeriodStart, m.Status, m.Generated,
		m.TotalGross, m.TotalTDS, m.TotalNet, m.TotalLeaveCashout, m.TotalDebtCleared, m.TotalRecovered,
		m.PaymentCount, m.ProcessedAt, m.ProcessedBy, m.PaidAt, m.PaidBy, m.SupersededByRunID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payroll run "+m.RunID, err)
	}
	return r.insertPaymentsInTx(ctx, tx, run.Payments)
}

func (r *PgxPayrollRunRepository) insertPaymentsInTx(ctx context.Context, tx pgx.Tx, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	batch := &pgx.Batch{}
	for _, p := range payments {
		mp := mapping.ToModelPayment(p)
		batch.Queue(query,
			mp.PaymentID, mp.RunID, mp.WorkerID, mp.Status, mp.LeaveDays,
			mp.Gross, mp.LeaveCashout, mp.DebtCleared, mp.TaxableAmount, mp.TDS, mp.NetBeforeRecovery, mp.Recovered, mp.NetAmount,
			mp.SnapBankName, mp.SnapAccountNumber, mp.SnapIFSC, mp.SnapPAN, mp.SnapTDSRatePct,
			mp.CreatedAt, mp.CreatedBy, mp.LastUpdatedAt, mp.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert payments", err)
	}
	return nil
}

// FindRunByID retrieves a run with its payments.
func (r *PgxPayrollRunRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE run_id = $1;`
	m, err := scanRun(r.Pool.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll run by ID "+runID, err)
	}

	paymentsQuery := `SELECT ` + paymentColumns + ` FROM payments WHERE run_id = $1 ORDER BY created_at, payment_id;`
	rows, err := r.Pool.Query(ctx, paymentsQuery, runID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for run "+runID, err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		mp, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for run "+runID, err)
		}
		payments = append(payments, *mp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for run "+runID, err)
	}

	run := mapping.ToDomainPayrollRun(*m)
	run.Payments = mapping.ToDomainPaymentSlice(payments)
	return &run, nil
}

// ListRuns retrieves a paginated list of runs, newest first.
func (r *PgxPayrollRunRepository) ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.PayrollRun, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + runColumns + ` FROM payroll_runs`
	orderByClause := `ORDER BY created_at DESC, run_id DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` WHERE (created_at, run_id) < ($1, $2) ` + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payroll runs", err)
	}
	defer rows.Close()

	runs := make([]models.PayrollRun, 0, fetchLimit)
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payroll run row", err)
		}
		runs = append(runs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payroll run rows", err)
	}

	var nextTokenVal *string
	if len(runs) > limit {
		last := runs[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RunID)
		nextTokenVal = &token
		runs = runs[:limit]
	}

	result := make([]domain.PayrollRun, len(runs))
	for i, m := range runs {
		result[i] = mapping.ToDomainPayrollRun(m)
	}
	return result, nextTokenVal, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPayrollRunRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

// ListPaymentsByWorker retrieves a worker's payments, newest first.
func (r *PgxPayrollRunRepository) ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + paymentColumns + ` FROM payments WHERE worker_id = $1`
	orderByClause := `ORDER BY created_at DESC, payment_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{workerID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + ` AND (created_at, payment_id) < ($2, $3) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, workerID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments for worker "+workerID, err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	var nextTokenVal *string
	if len(payments) > limit {
		last := payments[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PaymentID)
		nextTokenVal = &token
		payments = payments[:limit]
	}
	return mapping.ToDomainPaymentSlice(payments), nextTokenVal, nil
}

// UpdateRunStatus updates a run's status and status timestamps without
// touching balances.
func (r *PgxPayrollRunRepository) UpdateRunStatus(ctx context.Context, run domain.PayrollRun, actor string, now time.Time) error {
	m := mapping.ToModelPayrollRun(run)
	query := `
		UPDATE payroll_runs
		SET status = $2, processed_at = $3, processed_by = $4, paid_at = $5, paid_by = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE run_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RunID, m.Status, m.ProcessedAt, m.ProcessedBy, m.PaidAt, m.PaidBy, now, actor,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of run "+m.RunID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePayment replaces a payment's breakdown and rewrites the run totals.
// When reverse/post effects are given, the previously posted ledger rows are
// reversed and the new ones posted in the same transaction.
func (r *PgxPayrollRunRepository) UpdatePayment(ctx context.Context, payment domain.Payment, run domain.PayrollRun, reverse *portsrepo.PaymentEffects, post *portsrepo.PaymentEffects, actor string, now time.Time) error {
	var tx pgx.Tx
	var err error
	if reverse != nil || post != nil {
		tx, err = r.BeginSerializable(ctx)
	} else {
		tx, err = r.Begin(ctx)
	}
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mp := mapping.ToModelPayment(payment)
	paymentQuery := `
		UPDATE payments
		SET leave_days = $2, gross = $3, leave_cashout = $4, debt_cleared = $5, taxable_amount = $6,
		    tds = $7, net_before_recovery = $8, recovered = $9, net_amount = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE payment_id = $1;
	`
	tag, err := tx.Exec(ctx, paymentQuery,
		mp.PaymentID, mp.LeaveDays, mp.Gross, mp.LeaveCashout, mp.DebtCleared, mp.TaxableAmount,
		mp.TDS, mp.NetBeforeRecovery, mp.Recovered, mp.NetAmount, now, actor,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment "+mp.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	mr := mapping.ToModelPayrollRun(run)
	runQuery := `
		UPDATE payroll_runs
		SET total_gross = $2, total_tds = $3, total_net = $4, total_leave_cashout = $5,
		    total_debt_cleared = $6, total_recovered = $7, payment_count = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE run_id = $1;
	`
	_, err = tx.Exec(ctx, runQuery,
		mr.RunID, mr.TotalGross, mr.TotalTDS, mr.TotalNet, mr.TotalLeaveCashout,
		mr.TotalDebtCleared, mr.TotalRecovered, mr.PaymentCount, now, actor,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals of run "+mr.RunID, err)
	}

	if reverse != nil {
		if _, err := reverseEffectInTx(ctx, tx, r.ledgerRepo, *reverse, actor, now); err != nil {
			return err
		}
	}
	if post != nil {
		if _, err := applyEffectInTx(ctx, tx, r.ledgerRepo, *post, actor); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// CancelRun marks the run cancelled and reverses any effects posted at
// creation. Tax and schedule are untouched: a cancellable run was never paid.
func (r *PgxPayrollRunRepository) CancelRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.lockRun(ctx, tx, params.RunID); err != nil {
		return err
	}

	for _, eff := range params.Effects {
		if _, err := reverseEffectInTx(ctx, tx, r.ledgerRepo, eff, params.Actor, params.Now); err != nil {
			return err
		}
	}

	if err := r.cancelRunInTx(ctx, tx, params.RunID, params.Actor, params.Now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// cancelRunInTx moves the run to CANCELLED and fails its payments.
func (r *PgxPayrollRunRepository) cancelRunInTx(ctx context.Context, tx pgx.Tx, runID string, actor string, now time.Time) error {
	runQuery := `
		UPDATE payroll_runs
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, runQuery, runID, string(domain.RunCancelled), now, actor); err != nil {
		return apperrors.NewAppError(500, "failed to cancel run "+runID, err)
	}
	paymentsQuery := `
		UPDATE payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, paymentsQuery, runID, string(domain.PaymentFailed), now, actor); err != nil {
		return apperrors.NewAppError(500, "failed to fail payments of run "+runID, err)
	}
	return nil
}

// ReplaceRun cancels the old run, inserts its replacement and links the two
// inside one serializable transaction, so a failure anywhere leaves no
// half-replaced state behind.
func (r *PgxPayrollRunRepository) ReplaceRun(ctx context.Context, params portsrepo.ReplaceRunParams) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.lockRun(ctx, tx, params.OldRunID); err != nil {
		return err
	}

	for _, eff := range params.ReverseEffects {
		if _, err := reverseEffectInTx(ctx, tx, r.ledgerRepo, eff, params.Actor, params.Now); err != nil {
			return err
		}
	}
	if err := r.cancelRunInTx(ctx, tx, params.OldRunID, params.Actor, params.Now); err != nil {
		return err
	}

	if err := r.insertRunInTx(ctx, tx, params.Replacement); err != nil {
		return err
	}
	for _, eff := range params.PostEffects {
		if _, err := applyEffectInTx(ctx, tx, r.ledgerRepo, eff, params.Actor); err != nil {
			return err
		}
	}

	linkQuery := `
		UPDATE payroll_runs
		SET superseded_by_run_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery, params.OldRunID, params.Replacement.RunID, params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to link superseded run "+params.OldRunID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPayrollRunRepository) lockRun(ctx context.Context, tx pgx.Tx, runID string) (*models.PayrollRun, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE run_id = $1 FOR UPDATE;`
	m, err := scanRun(tx.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payroll run " + runID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock payroll run "+runID, err)
	}
	return m, nil
}

// SettleRun atomically marks the run paid and applies every payment's
// effects. Sources with ledger rows already posted (posting at creation)
// are skipped; tax aggregation and outbox events always apply, exactly once
// per settlement.
func (r *PgxPayrollRunRepository) SettleRun(ctx context.Context, params portsrepo.SettleRunParams) (*portsrepo.SettleResult, error) {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockRun(ctx, tx, params.RunID)
	if err != nil {
		return nil, err
	}
	if domain.RunStatus(locked.Status) == domain.RunPaid {
		return nil, apperrors.NewAppError(409, "run "+params.RunID+" is already paid", apperrors.ErrConflict)
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
		UPDATE payroll_runs
		SET status = $2, paid_at = $3, paid_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, runQuery, params.RunID, string(domain.RunPaid), params.Now, params.Actor); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark run "+params.RunID+" paid", err)
	}
	paymentsQuery := `
		UPDATE payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, paymentsQuery, params.RunID, string(domain.PaymentPaid), params.Now, params.Actor); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark payments of run "+params.RunID+" paid", err)
	}

	if params.Schedule != nil {
		if err := r.scheduleRepo.AdvanceInTx(ctx, tx, params.Schedule.ScheduleID, locked.RunDate, params.Actor, params.Now); err != nil {
			return nil, err
		}
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

// RevertPaidRun atomically moves a paid run back to pending and reverses
// every effect the settlement applied, including the tax aggregation.
func (r *PgxPayrollRunRepository) RevertPaidRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockRun(ctx, tx, params.RunID)
	if err != nil {
		return err
	}
	if domain.RunStatus(locked.Status) != domain.RunPaid {
		return apperrors.NewAppError(409, "run "+params.RunID+" is not paid", apperrors.ErrConflict)
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
		UPDATE payroll_runs
		SET status = $2, paid_at = NULL, paid_by = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, runQuery, params.RunID, string(domain.RunPending), params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to revert run "+params.RunID, err)
	}
	paymentsQuery := `
		UPDATE payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE run_id = $1;
	`
	if _, err := tx.Exec(ctx, paymentsQuery, params.RunID, string(domain.PaymentPending), params.Now, params.Actor); err != nil {
		return apperrors.NewAppError(500, "failed to revert payments of run "+params.RunID, err)
	}

	return r.Commit(ctx, tx)
}
