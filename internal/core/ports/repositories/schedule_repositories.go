package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// ScheduleReader defines read operations for pay schedule data
type ScheduleReader interface {
	// FindScheduleByID retrieves a specific pay schedule by its unique identifier.
	FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaySchedule, error)

	// ListSchedules retrieves all pay schedules.
	ListSchedules(ctx context.Context) ([]domain.PaySchedule, error)
}

// ScheduleWriter defines write operations for pay schedule data
type ScheduleWriter interface {
	// SaveSchedule persists a new pay schedule.
	SaveSchedule(ctx context.Context, schedule domain.PaySchedule) error

	// UpdateSchedule updates a schedule's name and cycle length.
	UpdateSchedule(ctx context.Context, schedule domain.PaySchedule) error

	// AdvanceInTx moves a schedule's last/next run dates past runDate within a
	// transaction. The advance is monotonic: dates never move backwards, so a
	// late settlement of an old run leaves a further-along schedule untouched.
	AdvanceInTx(ctx context.Context, tx pgx.Tx, scheduleID string, runDate time.Time, actor string, now time.Time) error
}

// ScheduleRepositoryFacade combines all schedule-related repository interfaces
// This is a facade for clients that need access to all operations
type ScheduleRepositoryFacade interface {
	ScheduleReader
	ScheduleWriter
}

// ScheduleRepositoryWithTx extends ScheduleRepositoryFacade with transaction capabilities
type ScheduleRepositoryWithTx interface {
	ScheduleRepositoryFacade
	TransactionManager
}
