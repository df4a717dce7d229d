package domain

import "time"

// PaySchedule is the recurring pay-cycle configuration consumed by the
// auto-generation scan. The schedule to use is passed explicitly to every
// call site; there is no implicit "active schedule" row. Advancement is
// forward-only: dates only move if a newer run date is confirmed.
type PaySchedule struct {
	ScheduleID  string     `json:"scheduleID"` // Primary Key (UUID)
	Name        string     `json:"name"`
	CycleDays   int        `json:"cycleDays"` // Commonly 14
	LastRunDate *time.Time `json:"lastRunDate,omitempty"`
	NextRunDate time.Time  `json:"nextRunDate"`
	AuditFields
}

// OverduePeriods returns the run dates of every period that is due on or
// before today, oldest first. The scan creates one run per overdue period.
func (s PaySchedule) OverduePeriods(today time.Time) []time.Time {
	if s.CycleDays <= 0 {
		return nil
	}
	var due []time.Time
	next := s.NextRunDate
	for !next.After(today) {
		due = append(due, next)
		next = next.AddDate(0, 0, s.CycleDays)
	}
	return due
}

// PeriodStartFor returns the first day of the pay period ending at runDate.
func (s PaySchedule) PeriodStartFor(runDate time.Time) time.Time {
	return runDate.AddDate(0, 0, -(s.CycleDays - 1))
}
