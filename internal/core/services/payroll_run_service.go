package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/messaging/kafka"
	"github.com/opspay/payroll_backend/internal/middleware"
	"github.com/opspay/payroll_backend/internal/platform/config"
	"github.com/opspay/payroll_backend/internal/utils/paycalc"
)

var (
	ErrDuplicateWorkerInRun = errors.New("worker appears more than once in the run")
	ErrInsufficientLeave    = errors.New("leave days exceed the worker's leave balance")
	ErrInsufficientDebt     = errors.New("debt amount exceeds the worker's debt balance")
	ErrInvalidTransition    = errors.New("run status transition is not allowed")
	ErrRunNotEditable       = errors.New("run can no longer be edited")
	ErrRunNotRerunnable     = errors.New("run can no longer be re-run")
)

// payrollRunService orchestrates the payroll run lifecycle: creation,
// auto-generation, status transitions, settlement and revert.
type payrollRunService struct {
	runRepo      portsrepo.PayrollRunRepositoryFacade
	workerRepo   portsrepo.WorkerRepositoryFacade
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	auditRepo    portsrepo.AuditRepositoryFacade

	cycleDays      int
	explicitPolicy config.PostingPolicy
	txTimeout      time.Duration
}

// NewPayrollRunService creates a new PayrollRunService.
func NewPayrollRunService(cfg *config.Config, runRepo portsrepo.PayrollRunRepositoryFacade, workerRepo portsrepo.WorkerRepositoryFacade, scheduleRepo portsrepo.ScheduleRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.PayrollRunSvcFacade {
	return &payrollRunService{
		runRepo:        runRepo,
		workerRepo:     workerRepo,
		scheduleRepo:   scheduleRepo,
		auditRepo:      auditRepo,
		cycleDays:      cfg.PayCycleDays,
		explicitPolicy: cfg.ExplicitRunPosting,
		txTimeout:      cfg.TxTimeout,
	}
}

var _ portssvc.PayrollRunSvcFacade = (*payrollRunService)(nil)

// txContext bounds a multi-account transaction with the configured timeout.
func (s *payrollRunService) txContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.txTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.txTimeout)
}

// postsAtCreation reports whether this run's effects are written when the
// run is persisted. Auto-generated runs always defer to settlement.
func (s *payrollRunService) postsAtCreation(run domain.PayrollRun) bool {
	return !run.Generated && s.explicitPolicy == config.PostAtCreation
}

// CreateRun creates an explicit PENDING run from per-worker adjustments.
// All inputs are validated against current balances before any write.
func (s *payrollRunService) CreateRun(ctx context.Context, req dto.CreatePayrollRunRequest, actor string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Workers) == 0 {
		return nil, fmt.Errorf("%w: run must include at least one worker", apperrors.ErrValidation)
	}
	workerIDs := make([]string, 0, len(req.Workers))
	seen := make(map[string]bool, len(req.Workers))
	for _, in := range req.Workers {
		if seen[in.WorkerID] {
			return nil, fmt.Errorf("%w: %s: %w", ErrDuplicateWorkerInRun, in.WorkerID, apperrors.ErrValidation)
		}
		seen[in.WorkerID] = true
		workerIDs = append(workerIDs, in.WorkerID)
	}

	workers, err := s.workerRepo.FindWorkersByIDs(ctx, workerIDs)
	if err != nil {
		logger.Error("Failed to fetch workers for run creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	periodStart := req.RunDate.AddDate(0, 0, -(s.cycleDays - 1))
	if req.PeriodStart != nil {
		periodStart = *req.PeriodStart
	}

	now := time.Now().UTC()
	runID := uuid.NewString()
	run := domain.PayrollRun{
		RunID:       runID,
		RunDate:     req.RunDate,
		PeriodStart: periodStart,
		Status:      domain.RunPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	payments := make([]domain.Payment, 0, len(req.Workers))
	for _, in := range req.Workers {
		worker, found := workers[in.WorkerID]
		if !found {
			return nil, fmt.Errorf("worker %s: %w", in.WorkerID, apperrors.ErrNotFound)
		}
		payment, err := s.computePayment(worker, runID, in.LeaveDays, in.DebtAmount, actor, now)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	run.RecomputeTotals(payments)
	run.Payments = payments

	var effects []portsrepo.PaymentEffects
	if s.postsAtCreation(run) {
		effects = make([]portsrepo.PaymentEffects, 0, len(payments))
		for _, p := range payments {
			effects = append(effects, buildPaymentEffects(p, actor, now))
		}
	}

	if err := s.runRepo.SaveRun(ctx, run, effects, actor); err != nil {
		logger.Error("Failed to save payroll run", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payroll run: %w", err)
	}

	s.recordAudit(ctx, actor, "payroll_run.create", runID, now)
	logger.Info("Payroll run created",
		slog.String("run_id", runID),
		slog.Int("payments", len(payments)),
		slog.Bool("posted_at_creation", len(effects) > 0),
	)
	return &run, nil
}

// computePayment validates one worker's inputs against current balances and
// derives the payment breakdown.
func (s *payrollRunService) computePayment(worker domain.Worker, runID string, leaveDays, debtAmount decimal.Decimal, actor string, now time.Time) (domain.Payment, error) {
	if leaveDays.GreaterThan(worker.LeaveBalance) {
		return domain.Payment{}, fmt.Errorf("%w: worker %s has %s days: %w", ErrInsufficientLeave, worker.WorkerID, worker.LeaveBalance, apperrors.ErrValidation)
	}
	if debtAmount.GreaterThan(worker.DebtBalance) {
		return domain.Payment{}, fmt.Errorf("%w: worker %s is owed %s: %w", ErrInsufficientDebt, worker.WorkerID, worker.DebtBalance, apperrors.ErrValidation)
	}

	breakdown, err := paycalc.ComputePayment(worker, leaveDays, debtAmount, s.cycleDays)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	return domain.Payment{
		PaymentID:         uuid.NewString(),
		RunID:             runID,
		WorkerID:          worker.WorkerID,
		Status:            domain.PaymentPending,
		LeaveDays:         breakdown.LeaveDays,
		Gross:             breakdown.Gross,
		LeaveCashout:      breakdown.LeaveCashout,
		DebtCleared:       breakdown.DebtCleared,
		TaxableAmount:     breakdown.TaxableAmount,
		TDS:               breakdown.TDS,
		NetBeforeRecovery: breakdown.NetBeforeRecovery,
		Recovered:         breakdown.Recovered,
		NetAmount:         breakdown.NetAmount,
		Snapshot:          breakdown.Snapshot,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}, nil
}

// GeneratePendingRuns creates one PENDING run per overdue period of the given
// schedule, covering every eligible worker with zero leave and debt inputs.
// Generated runs never post at creation; all effects wait for settlement.
func (s *payrollRunService) GeneratePendingRuns(ctx context.Context, scheduleID string, today time.Time, actor string) ([]domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	schedule, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule %s: %w", scheduleID, err)
	}

	due := schedule.OverduePeriods(today)
	if len(due) == 0 {
		logger.Info("No overdue periods for schedule", slog.String("schedule_id", scheduleID))
		return nil, nil
	}

	now := time.Now().UTC()
	created := make([]domain.PayrollRun, 0, len(due))
	for _, runDate := range due {
		periodStart := schedule.PeriodStartFor(runDate)
		workers, err := s.workerRepo.ListEligibleWorkers(ctx, periodStart, runDate)
		if err != nil {
			return created, fmt.Errorf("failed to list eligible workers for %s: %w", runDate.Format("2006-01-02"), err)
		}
		if len(workers) == 0 {
			logger.Warn("No eligible workers for period", slog.Time("run_date", runDate))
			continue
		}

		runID := uuid.NewString()
		run := domain.PayrollRun{
			RunID:       runID,
			RunDate:     runDate,
			PeriodStart: periodStart,
			Status:      domain.RunPending,
			Generated:   true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}

		payments := make([]domain.Payment, 0, len(workers))
		for _, worker := range workers {
			payment, err := s.computePayment(worker, runID, decimal.Zero, decimal.Zero, actor, now)
			if err != nil {
				return created, err
			}
			payments = append(payments, payment)
		}
		run.RecomputeTotals(payments)
		run.Payments = payments

		if err := s.runRepo.SaveRun(ctx, run, nil, actor); err != nil {
			logger.Error("Failed to save generated run", slog.String("error", err.Error()), slog.Time("run_date", runDate))
			return created, fmt.Errorf("failed to save generated run: %w", err)
		}

		s.recordAudit(ctx, actor, "payroll_run.generate", runID, now)
		created = append(created, run)
	}

	logger.Info("Generated payroll runs",
		slog.String("schedule_id", scheduleID),
		slog.Int("count", len(created)),
	)
	return created, nil
}

// GetRunByID retrieves a run with its payments.
func (s *payrollRunService) GetRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	return run, nil
}

// ListRuns retrieves a page of runs, newest first.
func (s *payrollRunService) ListRuns(ctx context.Context, params dto.ListRunsParams) (*dto.ListRunsResponse, error) {
	runs, nextToken, err := s.runRepo.ListRuns(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	resp := dto.ToListRunsResponse(runs, nextToken)
	return &resp, nil
}

// TransitionRun moves a run to the target status. PAID settles, PAID->PENDING
// reverts, CANCELLED reverses anything posted at creation. Repeating the
// current status is a no-op.
func (s *payrollRunService) TransitionRun(ctx context.Context, runID string, target domain.RunStatus, actor string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	if run.Status == target {
		logger.Info("Run already in target status", slog.String("run_id", runID), slog.String("status", string(target)))
		return run, nil
	}
	if !run.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s: %w", ErrInvalidTransition, run.Status, target, apperrors.ErrConflict)
	}

	from := run.Status
	now := time.Now().UTC()
	switch {
	case target == domain.RunPaid:
		if err := s.settle(ctx, run, actor, now); err != nil {
			return nil, err
		}
	case run.Status == domain.RunPaid && target == domain.RunPending:
		if err := s.revert(ctx, run, actor, now); err != nil {
			return nil, err
		}
	case target == domain.RunCancelled:
		if err := s.cancel(ctx, run, actor, now); err != nil {
			return nil, err
		}
	default:
		run.Status = target
		if target == domain.RunProcessed {
			run.ProcessedAt = &now
			run.ProcessedBy = &actor
		} else {
			run.ProcessedAt = nil
			run.ProcessedBy = nil
		}
		if err := s.runRepo.UpdateRunStatus(ctx, *run, actor, now); err != nil {
			return nil, fmt.Errorf("failed to update run %s status: %w", runID, err)
		}
	}

	s.recordAudit(ctx, actor, "payroll_run.transition", runID, now)
	updated, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload run %s: %w", runID, err)
	}
	logger.Info("Run transitioned",
		slog.String("run_id", runID),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
	)
	return updated, nil
}

// settle marks the run PAID, applying every payment's effects exactly once.
func (s *payrollRunService) settle(ctx context.Context, run *domain.PayrollRun, actor string, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	effects := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	events := make([]kafka.OutboxEvent, 0, len(run.Payments))
	for _, p := range run.Payments {
		effects = append(effects, buildPaymentEffects(p, actor, now))
		event, err := settlementEvent(p, now)
		if err != nil {
			return fmt.Errorf("failed to build settlement event for payment %s: %w", p.PaymentID, err)
		}
		events = append(events, event)
	}

	schedule, err := s.scheduleForRun(ctx, run)
	if err != nil {
		return err
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	result, err := s.runRepo.SettleRun(txCtx, portsrepo.SettleRunParams{
		RunID:    run.RunID,
		Effects:  effects,
		TaxYear:  now.Year(),
		TaxMonth: now.Month(),
		Schedule: schedule,
		Events:   events,
		Actor:    actor,
		Now:      now,
	})
	if err != nil {
		logger.Error("Failed to settle run", slog.String("run_id", run.RunID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to settle run %s: %w", run.RunID, err)
	}

	if len(result.Skipped) > 0 {
		logger.Info("Skipped already-posted payments during settlement",
			slog.String("run_id", run.RunID),
			slog.Int("skipped", len(result.Skipped)),
		)
	}
	return nil
}

// revert moves a PAID run back to PENDING, reversing what settlement posted.
// Tax decrements target the month the run was settled in, reconstructed
// from paidAt.
func (s *payrollRunService) revert(ctx context.Context, run *domain.PayrollRun, actor string, now time.Time) error {
	effects := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	for _, p := range run.Payments {
		effects = append(effects, buildPaymentEffects(p, actor, now))
	}

	settledAt := now
	if run.PaidAt != nil {
		settledAt = *run.PaidAt
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	if err := s.runRepo.RevertPaidRun(txCtx, portsrepo.RevertRunParams{
		RunID:    run.RunID,
		Effects:  effects,
		TaxYear:  settledAt.Year(),
		TaxMonth: settledAt.Month(),
		Actor:    actor,
		Now:      now,
	}); err != nil {
		return fmt.Errorf("failed to revert run %s: %w", run.RunID, err)
	}
	return nil
}

// cancel marks the run CANCELLED, reversing any creation-posted effects.
func (s *payrollRunService) cancel(ctx context.Context, run *domain.PayrollRun, actor string, now time.Time) error {
	effects := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	for _, p := range run.Payments {
		effects = append(effects, buildPaymentEffects(p, actor, now))
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	if err := s.runRepo.CancelRun(txCtx, portsrepo.RevertRunParams{
		RunID:   run.RunID,
		Effects: effects,
		Actor:   actor,
		Now:     now,
	}); err != nil {
		return fmt.Errorf("failed to cancel run %s: %w", run.RunID, err)
	}
	return nil
}

// scheduleForRun resolves the schedule a generated run belongs to so its
// settlement can advance it. The schedule is matched by cycle: its period
// start for the run date must equal the run's period start. Explicit runs
// never advance a schedule.
func (s *payrollRunService) scheduleForRun(ctx context.Context, run *domain.PayrollRun) (*domain.PaySchedule, error) {
	if !run.Generated {
		return nil, nil
	}
	schedules, err := s.scheduleRepo.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	for i := range schedules {
		if schedules[i].PeriodStartFor(run.RunDate).Equal(run.PeriodStart) {
			return &schedules[i], nil
		}
	}
	middleware.GetLoggerFromCtx(ctx).Warn("No schedule matches generated run", slog.String("run_id", run.RunID))
	return nil, nil
}

// EditPayment re-derives one payment of a DRAFT or PENDING run from a fresh
// worker snapshot and rewrites the run totals. For runs posted at creation,
// the old effects are reversed and the new ones posted in the same
// transaction.
func (s *payrollRunService) EditPayment(ctx context.Context, runID string, paymentID string, req dto.EditPaymentRequest, actor string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	if run.Status != domain.RunDraft && run.Status != domain.RunPending {
		return nil, fmt.Errorf("%w: run %s is %s: %w", ErrRunNotEditable, runID, run.Status, apperrors.ErrConflict)
	}

	var old *domain.Payment
	for i := range run.Payments {
		if run.Payments[i].PaymentID == paymentID {
			old = &run.Payments[i]
			break
		}
	}
	if old == nil {
		return nil, fmt.Errorf("payment %s in run %s: %w", paymentID, runID, apperrors.ErrNotFound)
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, old.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker %s: %w", old.WorkerID, err)
	}

	// When effects were posted at creation, the live balances already carry
	// the old payment. Validate and recompute as if it were reversed.
	snapshot := *worker
	postedAtCreation := s.postsAtCreation(*run)
	if postedAtCreation {
		snapshot.LeaveBalance = snapshot.LeaveBalance.Add(old.LeaveDays)
		snapshot.DebtBalance = snapshot.DebtBalance.Add(old.DebtCleared)
		snapshot.AccountBalance = snapshot.AccountBalance.Sub(old.NetAmount).Sub(old.Recovered)
	}

	now := time.Now().UTC()
	updated, err := s.computePayment(snapshot, runID, req.LeaveDays, req.DebtAmount, actor, now)
	if err != nil {
		return nil, err
	}
	updated.PaymentID = old.PaymentID
	updated.CreatedAt = old.CreatedAt
	updated.CreatedBy = old.CreatedBy

	payments := make([]domain.Payment, len(run.Payments))
	copy(payments, run.Payments)
	for i := range payments {
		if payments[i].PaymentID == paymentID {
			payments[i] = updated
		}
	}
	run.RecomputeTotals(payments)

	var reverse, post *portsrepo.PaymentEffects
	if postedAtCreation {
		oldEffects := buildPaymentEffects(*old, actor, now)
		newEffects := buildPaymentEffects(updated, actor, now)
		reverse = &oldEffects
		post = &newEffects
	}

	if err := s.runRepo.UpdatePayment(ctx, updated, *run, reverse, post, actor, now); err != nil {
		logger.Error("Failed to update payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}

	s.recordAudit(ctx, actor, "payment.edit", paymentID, now)
	return &updated, nil
}

// RerunRun cancels a not-yet-paid run and creates a fresh replacement for
// the same period from current worker data, linking the old run to its
// successor.
func (s *payrollRunService) RerunRun(ctx context.Context, runID string, actor string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	switch run.Status {
	case domain.RunDraft, domain.RunPending, domain.RunProcessed:
		// re-runnable
	default:
		return nil, fmt.Errorf("%w: run %s is %s: %w", ErrRunNotRerunnable, runID, run.Status, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	workerIDs := make([]string, 0, len(run.Payments))
	for _, p := range run.Payments {
		workerIDs = append(workerIDs, p.WorkerID)
	}
	workers, err := s.workerRepo.FindWorkersByIDs(ctx, workerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers for re-run: %w", err)
	}

	newRunID := uuid.NewString()
	newRun := domain.PayrollRun{
		RunID:       newRunID,
		RunDate:     run.RunDate,
		PeriodStart: run.PeriodStart,
		Status:      domain.RunPending,
		Generated:   run.Generated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	payments := make([]domain.Payment, 0, len(run.Payments))
	for _, p := range run.Payments {
		worker, found := workers[p.WorkerID]
		if !found {
			return nil, fmt.Errorf("worker %s: %w", p.WorkerID, apperrors.ErrNotFound)
		}
		payment, err := s.computePayment(worker, newRunID, p.LeaveDays, p.DebtCleared, actor, now)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	newRun.RecomputeTotals(payments)
	newRun.Payments = payments

	reverse := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	for _, p := range run.Payments {
		reverse = append(reverse, buildPaymentEffects(p, actor, now))
	}
	var post []portsrepo.PaymentEffects
	if s.postsAtCreation(newRun) {
		post = make([]portsrepo.PaymentEffects, 0, len(payments))
		for _, p := range payments {
			post = append(post, buildPaymentEffects(p, actor, now))
		}
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	if err := s.runRepo.ReplaceRun(txCtx, portsrepo.ReplaceRunParams{
		OldRunID:       runID,
		ReverseEffects: reverse,
		Replacement:    newRun,
		PostEffects:    post,
		Actor:          actor,
		Now:            now,
	}); err != nil {
		return nil, fmt.Errorf("failed to replace run %s: %w", runID, err)
	}

	s.recordAudit(ctx, actor, "payroll_run.rerun", runID, now)
	logger.Info("Run superseded",
		slog.String("old_run_id", runID),
		slog.String("new_run_id", newRunID),
	)
	return &newRun, nil
}

func (s *payrollRunService) recordAudit(ctx context.Context, actor, action, entityID string, now time.Time) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: "payroll_run",
		EntityID:   entityID,
		CreatedAt:  now,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry", slog.String("action", action), slog.String("error", err.Error()))
	}
}
