package services

import (
	"context"
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

// scheduleService manages pay schedule configuration. Advancement past a
// run date is owned by settlement, not this service.
type scheduleService struct {
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	auditRepo    portsrepo.AuditRepositoryFacade
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(scheduleRepo portsrepo.ScheduleRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		auditRepo:    auditRepo,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// CreateSchedule creates a new pay schedule.
func (s *scheduleService) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest, actor string) (*domain.PaySchedule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CycleDays <= 0 {
		return nil, fmt.Errorf("%w: cycle length must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	schedule := domain.PaySchedule{
		ScheduleID:  uuid.NewString(),
		Name:        req.Name,
		CycleDays:   req.CycleDays,
		NextRunDate: req.NextRunDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.scheduleRepo.SaveSchedule(ctx, schedule); err != nil {
		logger.Error("Failed to save schedule", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	s.recordAudit(ctx, actor, "schedule.create", schedule.ScheduleID, now)
	logger.Info("Pay schedule created", slog.String("schedule_id", schedule.ScheduleID), slog.Int("cycle_days", req.CycleDays))
	return &schedule, nil
}

// GetScheduleByID retrieves a pay schedule.
func (s *scheduleService) GetScheduleByID(ctx context.Context, scheduleID string) (*domain.PaySchedule, error) {
	schedule, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule %s: %w", scheduleID, err)
	}
	return schedule, nil
}

// ListSchedules retrieves all pay schedules.
func (s *scheduleService) ListSchedules(ctx context.Context) ([]domain.PaySchedule, error) {
	schedules, err := s.scheduleRepo.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// UpdateSchedule updates a schedule's name and cycle length. Run dates are
// not writable here; they only move through settlement.
func (s *scheduleService) UpdateSchedule(ctx context.Context, scheduleID string, req dto.UpdateScheduleRequest, actor string) (*domain.PaySchedule, error) {
	schedule, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule %s: %w", scheduleID, err)
	}

	if req.Name != nil {
		schedule.Name = *req.Name
	}
	if req.CycleDays != nil {
		if *req.CycleDays <= 0 {
			return nil, fmt.Errorf("%w: cycle length must be positive", apperrors.ErrValidation)
		}
		schedule.CycleDays = *req.CycleDays
	}

	now := time.Now().UTC()
	schedule.LastUpdatedAt = now
	schedule.LastUpdatedBy = actor

	if err := s.scheduleRepo.UpdateSchedule(ctx, *schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule %s: %w", scheduleID, err)
	}

	s.recordAudit(ctx, actor, "schedule.update", scheduleID, now)
	return schedule, nil
}

func (s *scheduleService) recordAudit(ctx context.Context, actor, action, entityID string, now time.Time) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: "pay_schedule",
		EntityID:   entityID,
		CreatedAt:  now,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record audit entry", slog.String("action", action), slog.String("error", err.Error()))
	}
}
