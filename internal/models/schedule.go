package models

import "time"

// PaySchedule is the persistence model for the recurring pay-cycle config.
type PaySchedule struct {
	ScheduleID  string     `json:"scheduleID"`
	Name        string     `json:"name"`
	CycleDays   int        `json:"cycleDays"`
	LastRunDate *time.Time `json:"lastRunDate"`
	NextRunDate time.Time  `json:"nextRunDate"`
	AuditFields
}

// AuditLog is the persistence model for an immutable audit entry.
type AuditLog struct {
	AuditLogID string    `json:"auditLogID"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	OldValues  []byte    `json:"oldValues"`
	NewValues  []byte    `json:"newValues"`
	CreatedAt  time.Time `json:"createdAt"`
}
