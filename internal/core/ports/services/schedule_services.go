package services

import (
	"context"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/dto"
)

// ScheduleReaderSvc defines read operations for pay schedules
type ScheduleReaderSvc interface {
	// GetScheduleByID retrieves a specific pay schedule.
	GetScheduleByID(ctx context.Context, scheduleID string) (*domain.PaySchedule, error)

	// ListSchedules retrieves all pay schedules.
	ListSchedules(ctx context.Context) ([]domain.PaySchedule, error)
}

// ScheduleWriterSvc defines write operations for pay schedules
type ScheduleWriterSvc interface {
	// CreateSchedule creates a new pay schedule.
	CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest, actor string) (*domain.PaySchedule, error)

	// UpdateSchedule updates a schedule's name and cycle length.
	UpdateSchedule(ctx context.Context, scheduleID string, req dto.UpdateScheduleRequest, actor string) (*domain.PaySchedule, error)
}

// ScheduleSvcFacade combines all schedule-related service interfaces
type ScheduleSvcFacade interface {
	ScheduleReaderSvc
	ScheduleWriterSvc
}
