package domain

import "github.com/shopspring/decimal"

// LeaveTransaction is the append-only audit row for a leave-balance change.
// DeltaDays is negative for a cashout, positive for a revert restore.
type LeaveTransaction struct {
	LeaveTransactionID string          `json:"leaveTransactionID"` // Primary Key (UUID)
	WorkerID           string          `json:"workerID"`
	DeltaDays          decimal.Decimal `json:"deltaDays"`
	BalanceAfter       decimal.Decimal `json:"balanceAfter"` // Leave balance after the delta
	PaymentID          *string         `json:"paymentID,omitempty"`
	Description        string          `json:"description"`
	AuditFields
}

// DebtTransaction is the append-only audit row for a debt-balance change.
// Delta is negative when debt is paid down, positive on a revert restore.
type DebtTransaction struct {
	DebtTransactionID string          `json:"debtTransactionID"` // Primary Key (UUID)
	WorkerID          string          `json:"workerID"`
	Delta             decimal.Decimal `json:"delta"`
	BalanceAfter      decimal.Decimal `json:"balanceAfter"` // Debt balance after the delta
	SourceType        *SourceType     `json:"sourceType,omitempty"`
	SourceID          *string         `json:"sourceID,omitempty"`
	Description       string          `json:"description"`
	AuditFields
}
