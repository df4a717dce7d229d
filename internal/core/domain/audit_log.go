package domain

import "time"

// AuditLog is one append-only entry describing a mutating call: who acted,
// what happened, and the before/after snapshots as JSON. One entry is
// recorded per mutating operation; storage beyond this contract is handled
// by the collaborating audit system.
type AuditLog struct {
	AuditLogID string    `json:"auditLogID"` // Primary Key (UUID)
	Actor      string    `json:"actor"`
	Action     string    `json:"action"` // e.g. "payroll_run.transition"
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	OldValues  []byte    `json:"oldValues,omitempty"` // JSON snapshot, nullable
	NewValues  []byte    `json:"newValues,omitempty"` // JSON snapshot, nullable
	CreatedAt  time.Time `json:"createdAt"`
}
