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
)

var (
	ErrWorkerTerminationDateMissing = errors.New("termination date is required when terminating a worker")
	ErrWorkerNegativeRate           = errors.New("tds rate must not be negative")
)

// workerService provides worker roster operations.
type workerService struct {
	workerRepo portsrepo.WorkerRepositoryFacade
	auditRepo  portsrepo.AuditRepositoryFacade
}

// NewWorkerService creates a new WorkerService.
func NewWorkerService(workerRepo portsrepo.WorkerRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.WorkerSvcFacade {
	return &workerService{
		workerRepo: workerRepo,
		auditRepo:  auditRepo,
	}
}

var _ portssvc.WorkerSvcFacade = (*workerService)(nil)

// CreateWorker registers a new worker with zeroed balances.
func (s *workerService) CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, actor string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CycleGrossPay.IsNegative() {
		return nil, fmt.Errorf("%w: cycle gross pay must not be negative", apperrors.ErrValidation)
	}
	if req.TDSRatePct.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrWorkerNegativeRate)
	}

	now := time.Now().UTC()
	worker := domain.Worker{
		WorkerID:       uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Status:         domain.Active,
		JoinDate:       req.JoinDate,
		CycleGrossPay:  req.CycleGrossPay,
		TDSRatePct:     req.TDSRatePct,
		LeaveBalance:   decimal.Zero,
		DebtBalance:    decimal.Zero,
		AccountBalance: decimal.Zero,
		Bank: domain.BankDetails{
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			IFSC:          req.IFSC,
			PAN:           req.PAN,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.workerRepo.SaveWorker(ctx, worker); err != nil {
		logger.Error("Failed to save worker", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save worker: %w", err)
	}

	s.recordAudit(ctx, actor, "worker.create", worker.WorkerID, now)
	logger.Info("Worker created", slog.String("worker_id", worker.WorkerID))
	return &worker, nil
}

// GetWorkerByID retrieves a worker by its ID.
func (s *workerService) GetWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker %s: %w", workerID, err)
	}
	return worker, nil
}

// ListWorkers retrieves a page of workers.
func (s *workerService) ListWorkers(ctx context.Context, params dto.ListWorkersParams) (*dto.ListWorkersResponse, error) {
	workers, nextToken, err := s.workerRepo.ListWorkers(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	resp := dto.ToListWorkersResponse(workers, nextToken)
	return &resp, nil
}

// UpdateWorker applies the provided fields to an existing worker. Balances
// are never writable here; they only move through runs and manual payments.
func (s *workerService) UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, actor string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker %s: %w", workerID, err)
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Email != nil {
		worker.Email = *req.Email
	}
	if req.Status != nil {
		worker.Status = *req.Status
	}
	if req.TerminationDate != nil {
		worker.TerminationDate = req.TerminationDate
	}
	if worker.Status == domain.Terminated && worker.TerminationDate == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrWorkerTerminationDateMissing)
	}
	if req.CycleGrossPay != nil {
		if req.CycleGrossPay.IsNegative() {
			return nil, fmt.Errorf("%w: cycle gross pay must not be negative", apperrors.ErrValidation)
		}
		worker.CycleGrossPay = *req.CycleGrossPay
	}
	if req.TDSRatePct != nil {
		if req.TDSRatePct.IsNegative() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrWorkerNegativeRate)
		}
		worker.TDSRatePct = *req.TDSRatePct
	}
	if req.BankName != nil {
		worker.Bank.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		worker.Bank.AccountNumber = *req.AccountNumber
	}
	if req.IFSC != nil {
		worker.Bank.IFSC = *req.IFSC
	}
	if req.PAN != nil {
		worker.Bank.PAN = *req.PAN
	}

	now := time.Now().UTC()
	worker.LastUpdatedAt = now
	worker.LastUpdatedBy = actor

	if err := s.workerRepo.UpdateWorker(ctx, *worker); err != nil {
		logger.Error("Failed to update worker", slog.String("error", err.Error()), slog.String("worker_id", workerID))
		return nil, fmt.Errorf("failed to update worker %s: %w", workerID, err)
	}

	s.recordAudit(ctx, actor, "worker.update", workerID, now)
	return worker, nil
}

// DeactivateWorker marks a worker INACTIVE. The record and its history stay.
func (s *workerService) DeactivateWorker(ctx context.Context, workerID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.workerRepo.DeactivateWorker(ctx, workerID, actor, now); err != nil {
		return fmt.Errorf("failed to deactivate worker %s: %w", workerID, err)
	}

	s.recordAudit(ctx, actor, "worker.deactivate", workerID, now)
	logger.Info("Worker deactivated", slog.String("worker_id", workerID))
	return nil
}

func (s *workerService) recordAudit(ctx context.Context, actor, action, workerID string, now time.Time) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: "worker",
		EntityID:   workerID,
		CreatedAt:  now,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry", slog.String("action", action), slog.String("error", err.Error()))
	}
}
