package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/middleware"
)

var ErrFilingStatusNotForward = errors.New("filing status may only advance one step forward")

// taxPeriodService provides access to the monthly tax aggregates and the
// forward-only filing flow. Amount mutations happen exclusively inside
// settlement transactions; this service never writes totals.
type taxPeriodService struct {
	taxRepo   portsrepo.TaxPeriodRepositoryFacade
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewTaxPeriodService creates a new TaxPeriodService.
func NewTaxPeriodService(taxRepo portsrepo.TaxPeriodRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.TaxPeriodSvcFacade {
	return &taxPeriodService{
		taxRepo:   taxRepo,
		auditRepo: auditRepo,
	}
}

var _ portssvc.TaxPeriodSvcFacade = (*taxPeriodService)(nil)

// GetRecord retrieves the tax record for a worker and month.
func (s *taxPeriodService) GetRecord(ctx context.Context, year int, month time.Month, workerID string) (*domain.TaxPeriodRecord, error) {
	record, err := s.taxRepo.FindRecord(ctx, year, month, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax record for worker %s in %d-%02d: %w", workerID, year, month, err)
	}
	return record, nil
}

// ListRecordsByPeriod retrieves all tax records of a month.
func (s *taxPeriodService) ListRecordsByPeriod(ctx context.Context, year int, month time.Month) ([]domain.TaxPeriodRecord, error) {
	records, err := s.taxRepo.ListRecordsByPeriod(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records for %d-%02d: %w", year, month, err)
	}
	return records, nil
}

// ListRecordsByWorker retrieves a worker's tax records across months.
func (s *taxPeriodService) ListRecordsByWorker(ctx context.Context, workerID string, params dto.ListTaxRecordsParams) (*dto.ListTaxRecordsResponse, error) {
	records, nextToken, err := s.taxRepo.ListRecordsByWorker(ctx, workerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records for worker %s: %w", workerID, err)
	}
	resp := dto.ToListTaxRecordsResponse(records, nextToken)
	return &resp, nil
}

// AdvanceFilingStatusByRecordID resolves the record by its ID and advances
// its filing status one step forward.
func (s *taxPeriodService) AdvanceFilingStatusByRecordID(ctx context.Context, recordID string, target domain.FilingStatus, actor string) (*domain.TaxPeriodRecord, error) {
	record, err := s.taxRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax record %s: %w", recordID, err)
	}
	return s.AdvanceFilingStatus(ctx, record.Year, time.Month(record.Month), record.WorkerID, target, actor)
}

// AdvanceFilingStatus moves a record's filing status exactly one step
// forward. Backward moves and skips are rejected.
func (s *taxPeriodService) AdvanceFilingStatus(ctx context.Context, year int, month time.Month, workerID string, target domain.FilingStatus, actor string) (*domain.TaxPeriodRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.taxRepo.FindRecord(ctx, year, month, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax record for worker %s in %d-%02d: %w", workerID, year, month, err)
	}
	if !record.FilingStatus.CanAdvanceTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s: %w", ErrFilingStatusNotForward, record.FilingStatus, target, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	if err := s.taxRepo.UpdateFilingStatus(ctx, year, month, workerID, target, actor, now); err != nil {
		logger.Error("Failed to advance filing status", slog.String("worker_id", workerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to advance filing status: %w", err)
	}

	if s.auditRepo != nil {
		entry := domain.AuditLog{
			AuditLogID: uuid.NewString(),
			Actor:      actor,
			Action:     "tax_period.filing_status",
			EntityType: "tax_period_record",
			EntityID:   record.RecordID,
			CreatedAt:  now,
		}
		if err := s.auditRepo.Record(ctx, entry); err != nil {
			logger.Warn("Failed to record audit entry", slog.String("error", err.Error()))
		}
	}

	record.FilingStatus = target
	record.LastUpdatedAt = now
	record.LastUpdatedBy = actor
	logger.Info("Filing status advanced",
		slog.String("worker_id", workerID),
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.String("status", string(target)),
	)
	return record, nil
}
