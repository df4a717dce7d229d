package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	"github.com/opspay/payroll_backend/internal/models"
	"github.com/opspay/payroll_backend/internal/utils/mapping"
)

const scheduleColumns = `
	schedule_id, name, cycle_days, last_run_date, next_run_date,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxScheduleRepository struct {
	BaseRepository
}

// newPgxScheduleRepository creates a new repository for pay schedule data.
func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryWithTx {
	return &PgxScheduleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxScheduleRepository implements portsrepo.ScheduleRepositoryWithTx
var _ portsrepo.ScheduleRepositoryWithTx = (*PgxScheduleRepository)(nil)

func scanSchedule(row pgx.Row) (*models.PaySchedule, error) {
	var m models.PaySchedule
	err := row.Scan(
		&m.ScheduleID, &m.Name, &m.CycleDays, &m.LastRunDate, &m.NextRunDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSchedule persists a new pay schedule.
func (r *PgxScheduleRepository) SaveSchedule(ctx context.Context, schedule domain.PaySchedule) error {
	m := mapping.ToModelPaySchedule(schedule)
	query := `
		INSERT INTO pay_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ScheduleID, m.Name, m.CycleDays, m.LastRunDate, m.NextRunDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert pay schedule "+m.ScheduleID, err)
	}
	return nil
}

// FindScheduleByID retrieves a pay schedule by its ID.
func (r *PgxScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM pay_schedules WHERE schedule_id = $1;`
	m, err := scanSchedule(r.Pool.QueryRow(ctx, query, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pay schedule by ID "+scheduleID, err)
	}
	s := mapping.ToDomainPaySchedule(*m)
	return &s, nil
}

// ListSchedules retrieves all pay schedules.
func (r *PgxScheduleRepository) ListSchedules(ctx context.Context) ([]domain.PaySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM pay_schedules ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pay schedules", err)
	}
	defer rows.Close()

	var result []domain.PaySchedule
	for rows.Next() {
		m, err := scanSchedule(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pay schedule row", err)
		}
		result = append(result, mapping.ToDomainPaySchedule(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pay schedule rows", err)
	}
	return result, nil
}

// UpdateSchedule updates a schedule's name and cycle length.
func (r *PgxScheduleRepository) UpdateSchedule(ctx context.Context, schedule domain.PaySchedule) error {
	m := mapping.ToModelPaySchedule(schedule)
	query := `
		UPDATE pay_schedules
		SET name = $2, cycle_days = $3, last_updated_at = $4, last_updated_by = $5
		WHERE schedule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.ScheduleID, m.Name, m.CycleDays, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update pay schedule "+m.ScheduleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdvanceInTx moves a schedule's last/next run dates past runDate within a
// transaction. Advancement is monotonic: if a newer settlement already moved
// the schedule further along, a late settlement of an older run is a no-op.
func (r *PgxScheduleRepository) AdvanceInTx(ctx context.Context, tx pgx.Tx, scheduleID string, runDate time.Time, actor string, now time.Time) error {
	lockQuery := `SELECT ` + scheduleColumns + ` FROM pay_schedules WHERE schedule_id = $1 FOR UPDATE;`
	m, err := scanSchedule(tx.QueryRow(ctx, lockQuery, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("pay schedule " + scheduleID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock pay schedule "+scheduleID, err)
	}

	if m.LastRunDate != nil && !runDate.After(*m.LastRunDate) {
		return nil
	}

	next := m.NextRunDate
	for !next.After(runDate) {
		next = next.AddDate(0, 0, m.CycleDays)
	}

	updateQuery := `
		UPDATE pay_schedules
		SET last_run_date = $2, next_run_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE schedule_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery, scheduleID, runDate, next, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance pay schedule "+scheduleID, err)
	}
	return nil
}
