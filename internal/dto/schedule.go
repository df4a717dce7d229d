package dto

import (
	"time"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// CreateScheduleRequest defines the data needed to create a pay schedule.
type CreateScheduleRequest struct {
	Name        string    `json:"name" binding:"required"`
	CycleDays   int       `json:"cycleDays" binding:"required,min=1"`
	NextRunDate time.Time `json:"nextRunDate" binding:"required"`
}

// UpdateScheduleRequest defines the data allowed for updating a schedule.
type UpdateScheduleRequest struct {
	Name      *string `json:"name"`
	CycleDays *int    `json:"cycleDays" binding:"omitempty,min=1"`
}

// ScheduleResponse defines the data returned for a pay schedule.
type ScheduleResponse struct {
	ScheduleID  string     `json:"scheduleID"`
	Name        string     `json:"name"`
	CycleDays   int        `json:"cycleDays"`
	LastRunDate *time.Time `json:"lastRunDate,omitempty"`
	NextRunDate time.Time  `json:"nextRunDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// GeneratedRunsResponse reports the runs created by a schedule scan.
type GeneratedRunsResponse struct {
	Generated []PayrollRunResponse `json:"generated"`
}

// ToScheduleResponse converts a domain.PaySchedule to ScheduleResponse DTO.
func ToScheduleResponse(s *domain.PaySchedule) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:  s.ScheduleID,
		Name:        s.Name,
		CycleDays:   s.CycleDays,
		LastRunDate: s.LastRunDate,
		NextRunDate: s.NextRunDate,
		CreatedAt:   s.CreatedAt,
	}
}
