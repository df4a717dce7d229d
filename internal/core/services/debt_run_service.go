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
	ErrDebtAmountNotPositive = errors.New("debt amount must be positive")
	ErrDebtExceedsBalance    = errors.New("debt amount exceeds the worker's debt balance")
)

// debtRunService orchestrates standalone debt payout batches.
type debtRunService struct {
	debtRunRepo portsrepo.DebtRunRepositoryFacade
	workerRepo  portsrepo.WorkerRepositoryFacade
	auditRepo   portsrepo.AuditRepositoryFacade

	policy    config.PostingPolicy
	txTimeout time.Duration
}

// NewDebtRunService creates a new DebtRunService.
func NewDebtRunService(cfg *config.Config, debtRunRepo portsrepo.DebtRunRepositoryFacade, workerRepo portsrepo.WorkerRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.DebtRunSvcFacade {
	return &debtRunService{
		debtRunRepo: debtRunRepo,
		workerRepo:  workerRepo,
		auditRepo:   auditRepo,
		policy:      cfg.DebtRunPosting,
		txTimeout:   cfg.TxTimeout,
	}
}

var _ portssvc.DebtRunSvcFacade = (*debtRunService)(nil)

// txContext bounds a multi-account transaction with the configured timeout.
func (s *debtRunService) txContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.txTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.txTimeout)
}

// CreateDebtRun creates a PENDING debt run after validating every entry
// against the worker's current debt balance.
func (s *debtRunService) CreateDebtRun(ctx context.Context, req dto.CreateDebtRunRequest, actor string) (*domain.DebtRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: debt run must include at least one entry", apperrors.ErrValidation)
	}
	workerIDs := make([]string, 0, len(req.Entries))
	seen := make(map[string]bool, len(req.Entries))
	for _, in := range req.Entries {
		if seen[in.WorkerID] {
			return nil, fmt.Errorf("%w: %s: %w", ErrDuplicateWorkerInRun, in.WorkerID, apperrors.ErrValidation)
		}
		seen[in.WorkerID] = true
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: worker %s: %w", ErrDebtAmountNotPositive, in.WorkerID, apperrors.ErrValidation)
		}
		workerIDs = append(workerIDs, in.WorkerID)
	}

	workers, err := s.workerRepo.FindWorkersByIDs(ctx, workerIDs)
	if err != nil {
		logger.Error("Failed to fetch workers for debt run creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	now := time.Now().UTC()
	runID := uuid.NewString()
	run := domain.DebtRun{
		DebtRunID: runID,
		RunDate:   req.RunDate,
		Status:    domain.DebtRunPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	totalAmount, totalTDS, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
	payments := make([]domain.DebtPayment, 0, len(req.Entries))
	for _, in := range req.Entries {
		worker, found := workers[in.WorkerID]
		if !found {
			return nil, fmt.Errorf("worker %s: %w", in.WorkerID, apperrors.ErrNotFound)
		}
		if in.Amount.GreaterThan(worker.DebtBalance) {
			return nil, fmt.Errorf("%w: worker %s is owed %s: %w", ErrDebtExceedsBalance, in.WorkerID, worker.DebtBalance, apperrors.ErrValidation)
		}

		breakdown, err := paycalc.ComputeDebtPayment(worker, in.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}

		payment := domain.DebtPayment{
			DebtPaymentID: uuid.NewString(),
			DebtRunID:     runID,
			WorkerID:      worker.WorkerID,
			Status:        domain.PaymentPending,
			Amount:        breakdown.DebtCleared,
			TDS:           breakdown.TDS,
			NetAmount:     breakdown.NetAmount,
			Snapshot:      breakdown.Snapshot,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
		payments = append(payments, payment)
		totalAmount = totalAmount.Add(payment.Amount)
		totalTDS = totalTDS.Add(payment.TDS)
		totalNet = totalNet.Add(payment.NetAmount)
	}
	run.TotalAmount = totalAmount
	run.TotalTDS = totalTDS
	run.TotalNet = totalNet
	run.PaymentCount = len(payments)
	run.Payments = payments

	var effects []portsrepo.PaymentEffects
	if s.policy == config.PostAtCreation {
		effects = make([]portsrepo.PaymentEffects, 0, len(payments))
		for _, p := range payments {
			effects = append(effects, buildDebtPaymentEffects(p, actor, now))
		}
	}

	if err := s.debtRunRepo.SaveDebtRun(ctx, run, effects, actor); err != nil {
		logger.Error("Failed to save debt run", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save debt run: %w", err)
	}

	s.recordAudit(ctx, actor, "debt_run.create", runID, now)
	logger.Info("Debt run created",
		slog.String("debt_run_id", runID),
		slog.Int("payments", len(payments)),
		slog.Bool("posted_at_creation", len(effects) > 0),
	)
	return &run, nil
}

// GetDebtRunByID retrieves a debt run with its payments.
func (s *debtRunService) GetDebtRunByID(ctx context.Context, runID string) (*domain.DebtRun, error) {
	run, err := s.debtRunRepo.FindDebtRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find debt run %s: %w", runID, err)
	}
	return run, nil
}

// ListDebtRuns retrieves a page of debt runs, newest first.
func (s *debtRunService) ListDebtRuns(ctx context.Context, params dto.ListDebtRunsParams) (*dto.ListDebtRunsResponse, error) {
	runs, nextToken, err := s.debtRunRepo.ListDebtRuns(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt runs: %w", err)
	}
	resp := dto.ToListDebtRunsResponse(runs, nextToken)
	return &resp, nil
}

// TransitionDebtRun moves a debt run to the target status. PAID settles,
// PAID->PENDING reverts, CANCELLED reverses anything posted at creation.
func (s *debtRunService) TransitionDebtRun(ctx context.Context, runID string, target domain.DebtRunStatus, actor string) (*domain.DebtRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	run, err := s.debtRunRepo.FindDebtRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find debt run %s: %w", runID, err)
	}
	if run.Status == target {
		logger.Info("Debt run already in target status", slog.String("debt_run_id", runID), slog.String("status", string(target)))
		return run, nil
	}
	if !run.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s: %w", ErrInvalidTransition, run.Status, target, apperrors.ErrConflict)
	}

	from := run.Status
	now := time.Now().UTC()
	switch {
	case target == domain.DebtRunPaid:
		if err := s.settle(ctx, run, actor, now); err != nil {
			return nil, err
		}
	case from == domain.DebtRunPaid && target == domain.DebtRunPending:
		if err := s.revert(ctx, run, actor, now); err != nil {
			return nil, err
		}
	case target == domain.DebtRunCancelled:
		if err := s.cancel(ctx, run, actor, now); err != nil {
			return nil, err
		}
	default:
		run.Status = target
		if err := s.debtRunRepo.UpdateDebtRunStatus(ctx, *run, actor, now); err != nil {
			return nil, fmt.Errorf("failed to update debt run %s status: %w", runID, err)
		}
	}

	s.recordAudit(ctx, actor, "debt_run.transition", runID, now)
	updated, err := s.debtRunRepo.FindDebtRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload debt run %s: %w", runID, err)
	}
	logger.Info("Debt run transitioned",
		slog.String("debt_run_id", runID),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
	)
	return updated, nil
}

func (s *debtRunService) settle(ctx context.Context, run *domain.DebtRun, actor string, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	effects := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	events := make([]kafka.OutboxEvent, 0, len(run.Payments))
	for _, p := range run.Payments {
		effects = append(effects, buildDebtPaymentEffects(p, actor, now))
		event, err := debtSettlementEvent(p, now)
		if err != nil {
			return fmt.Errorf("failed to build settlement event for debt payment %s: %w", p.DebtPaymentID, err)
		}
		events = append(events, event)
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	result, err := s.debtRunRepo.SettleDebtRun(txCtx, portsrepo.SettleRunParams{
		RunID:    run.DebtRunID,
		Effects:  effects,
		TaxYear:  now.Year(),
		TaxMonth: now.Month(),
		Events:   events,
		Actor:    actor,
		Now:      now,
	})
	if err != nil {
		logger.Error("Failed to settle debt run", slog.String("debt_run_id", run.DebtRunID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to settle debt run %s: %w", run.DebtRunID, err)
	}

	if len(result.Skipped) > 0 {
		logger.Info("Skipped already-posted debt payments during settlement",
			slog.String("debt_run_id", run.DebtRunID),
			slog.Int("skipped", len(result.Skipped)),
		)
	}
	return nil
}

func (s *debtRunService) revert(ctx context.Context, run *domain.DebtRun, actor string, now time.Time) error {
	effects := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	for _, p := range run.Payments {
		effects = append(effects, buildDebtPaymentEffects(p, actor, now))
	}

	settledAt := now
	if run.PaidAt != nil {
		settledAt = *run.PaidAt
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	if err := s.debtRunRepo.RevertPaidDebtRun(txCtx, portsrepo.RevertRunParams{
		RunID:    run.DebtRunID,
		Effects:  effects,
		TaxYear:  settledAt.Year(),
		TaxMonth: settledAt.Month(),
		Actor:    actor,
		Now:      now,
	}); err != nil {
		return fmt.Errorf("failed to revert debt run %s: %w", run.DebtRunID, err)
	}
	return nil
}

func (s *debtRunService) cancel(ctx context.Context, run *domain.DebtRun, actor string, now time.Time) error {
	effects := make([]portsrepo.PaymentEffects, 0, len(run.Payments))
	for _, p := range run.Payments {
		effects = append(effects, buildDebtPaymentEffects(p, actor, now))
	}

	txCtx, cancelTx := s.txContext(ctx)
	defer cancelTx()
	if err := s.debtRunRepo.CancelDebtRun(txCtx, portsrepo.RevertRunParams{
		RunID:   run.DebtRunID,
		Effects: effects,
		Actor:   actor,
		Now:     now,
	}); err != nil {
		return fmt.Errorf("failed to cancel debt run %s: %w", run.DebtRunID, err)
	}
	return nil
}

func (s *debtRunService) recordAudit(ctx context.Context, actor, action, entityID string, now time.Time) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: "debt_run",
		EntityID:   entityID,
		CreatedAt:  now,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry", slog.String("action", action), slog.String("error", err.Error()))
	}
}
