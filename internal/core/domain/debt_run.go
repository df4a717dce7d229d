package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtRunStatus is the lifecycle of a standalone debt payout batch.
// There is no DRAFT state; debt runs start PENDING.
type DebtRunStatus string

const (
	DebtRunPending   DebtRunStatus = "PENDING"
	DebtRunProcessed DebtRunStatus = "PROCESSED"
	DebtRunPaid      DebtRunStatus = "PAID"
	DebtRunCancelled DebtRunStatus = "CANCELLED"
)

// CanTransitionTo reports whether the debt run status may move to target.
func (s DebtRunStatus) CanTransitionTo(target DebtRunStatus) bool {
	switch s {
	case DebtRunPending:
		return target == DebtRunProcessed || target == DebtRunCancelled
	case DebtRunProcessed:
		return target == DebtRunPaid || target == DebtRunPending
	case DebtRunPaid:
		return target == DebtRunPending
	case DebtRunCancelled:
		return false
	default:
		return false
	}
}

// DebtRun is a payout batch that settles outstanding worker debt only.
type DebtRun struct {
	DebtRunID    string          `json:"debtRunID"` // Primary Key (UUID)
	RunDate      time.Time       `json:"runDate"`
	Status       DebtRunStatus   `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalTDS     decimal.Decimal `json:"totalTDS"`
	TotalNet     decimal.Decimal `json:"totalNet"`
	PaymentCount int             `json:"paymentCount"`
	PaidAt       *time.Time      `json:"paidAt,omitempty"`
	PaidBy       *string         `json:"paidBy,omitempty"`
	AuditFields

	Payments []DebtPayment `json:"payments,omitempty"` // Loaded separately
}

// DebtPayment is one worker's debt settlement inside a debt run. Taxed like
// ordinary salary; the worker's debt balance is decremented per the posting
// policy (by default at creation, not settlement).
type DebtPayment struct {
	DebtPaymentID string          `json:"debtPaymentID"` // Primary Key (UUID)
	DebtRunID     string          `json:"debtRunID"`     // FK -> DebtRun
	WorkerID      string          `json:"workerID"`      // FK -> Worker
	Status        PaymentStatus   `json:"status"`
	Amount        decimal.Decimal `json:"amount"` // Debt settled, pre-tax
	TDS           decimal.Decimal `json:"tds"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	Snapshot      BankSnapshot    `json:"snapshot"`
	AuditFields
}
