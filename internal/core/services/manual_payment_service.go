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
	"github.com/opspay/payroll_backend/internal/middleware"
	"github.com/opspay/payroll_backend/internal/utils/paycalc"
)

var (
	ErrManualAmountNotPositive = errors.New("manual payment amount must be positive")
	ErrManualUnknownCategory   = errors.New("unknown manual payment category")
)

// manualPaymentService records one-off advances, bonuses, reimbursements,
// loans and adjustments.
type manualPaymentService struct {
	manualRepo portsrepo.ManualPaymentRepositoryFacade
	workerRepo portsrepo.WorkerRepositoryFacade
	auditRepo  portsrepo.AuditRepositoryFacade
}

// NewManualPaymentService creates a new ManualPaymentService.
func NewManualPaymentService(manualRepo portsrepo.ManualPaymentRepositoryFacade, workerRepo portsrepo.WorkerRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.ManualPaymentSvcFacade {
	return &manualPaymentService{
		manualRepo: manualRepo,
		workerRepo: workerRepo,
		auditRepo:  auditRepo,
	}
}

var _ portssvc.ManualPaymentSvcFacade = (*manualPaymentService)(nil)

// CreateManualPayment records a one-off payment and posts exactly one ledger
// row atomically with it. Direction follows the category; only ADJUSTMENT
// honors an explicit direction from the request. Tax applies only when the
// payment is flagged taxable.
func (s *manualPaymentService) CreateManualPayment(ctx context.Context, req dto.CreateManualPaymentRequest, actor string) (*domain.ManualPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: %s: %w", ErrManualUnknownCategory, req.Category, apperrors.ErrValidation)
	}
	if !req.GrossAmount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s: %w", ErrManualAmountNotPositive, req.GrossAmount, apperrors.ErrValidation)
	}

	worker, err := s.workerRepo.FindWorkerByID(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker %s: %w", req.WorkerID, err)
	}

	entryType := req.Category.DefaultEntryType()
	if req.Category == domain.ManualAdjustment && req.EntryType != nil {
		entryType = *req.EntryType
	}

	tds := decimal.Zero
	if req.IsTaxable {
		tds = paycalc.Tax(req.GrossAmount, worker.TDSRatePct)
	}
	net := req.GrossAmount.Sub(tds)

	now := time.Now().UTC()
	payment := domain.ManualPayment{
		ManualPaymentID: uuid.NewString(),
		WorkerID:        worker.WorkerID,
		Category:        req.Category,
		EntryType:       entryType,
		GrossAmount:     req.GrossAmount,
		IsTaxable:       req.IsTaxable,
		TDS:             tds,
		NetAmount:       net,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	sourceType := domain.SourceManualPayment
	sourceID := payment.ManualPaymentID
	description := fmt.Sprintf("%s: %s", req.Category, req.Notes)
	if req.Notes == "" {
		description = string(req.Category)
	}
	effects := portsrepo.PaymentEffects{
		SourceType: sourceType,
		SourceID:   sourceID,
		WorkerID:   worker.WorkerID,
		LedgerEntries: []domain.AccountTransaction{{
			TransactionID: uuid.NewString(),
			WorkerID:      worker.WorkerID,
			EntryType:     entryType,
			Category:      req.Category.LedgerCategory(),
			Amount:        net,
			Description:   description,
			SourceType:    &sourceType,
			SourceID:      &sourceID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}},
		LeaveDelta: decimal.Zero,
		DebtDelta:  decimal.Zero,
		TaxGross:   req.GrossAmount,
		TaxTDS:     tds,
		TaxNet:     net,
	}

	saved, err := s.manualRepo.SaveManualPayment(ctx, payment, effects, actor)
	if err != nil {
		logger.Error("Failed to save manual payment", slog.String("error", err.Error()), slog.String("worker_id", req.WorkerID))
		return nil, fmt.Errorf("failed to save manual payment: %w", err)
	}

	s.recordAudit(ctx, actor, "manual_payment.create", saved.ManualPaymentID, now)
	logger.Info("Manual payment recorded",
		slog.String("manual_payment_id", saved.ManualPaymentID),
		slog.String("category", string(req.Category)),
		slog.String("entry_type", string(entryType)),
	)
	return saved, nil
}

// GetManualPaymentByID retrieves a manual payment.
func (s *manualPaymentService) GetManualPaymentByID(ctx context.Context, paymentID string) (*domain.ManualPayment, error) {
	payment, err := s.manualRepo.FindManualPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find manual payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListManualPayments retrieves a page of a worker's manual payments.
func (s *manualPaymentService) ListManualPayments(ctx context.Context, workerID string, params dto.ListManualPaymentsParams) (*dto.ListManualPaymentsResponse, error) {
	payments, nextToken, err := s.manualRepo.ListManualPaymentsByWorker(ctx, workerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual payments for worker %s: %w", workerID, err)
	}
	resp := dto.ToListManualPaymentsResponse(payments, nextToken)
	return &resp, nil
}

func (s *manualPaymentService) recordAudit(ctx context.Context, actor, action, entityID string, now time.Time) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: "manual_payment",
		EntityID:   entityID,
		CreatedAt:  now,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry", slog.String("action", action), slog.String("error", err.Error()))
	}
}
