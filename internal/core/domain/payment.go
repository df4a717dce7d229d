package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus tracks a single payment within a run.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// BankSnapshot freezes the worker's bank and tax details as of payment
// creation. It is populated once by the calculator and never updated, so
// the historical record stays intact when the worker record changes later.
type BankSnapshot struct {
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	IFSC          string          `json:"ifsc"`
	PAN           string          `json:"pan"`
	TDSRatePct    decimal.Decimal `json:"tdsRatePct"`
}

// Payment is one worker's computed payout inside a payroll run.
type Payment struct {
	PaymentID string        `json:"paymentID"` // Primary Key (UUID)
	RunID     string        `json:"runID"`     // FK -> PayrollRun
	WorkerID  string        `json:"workerID"`  // FK -> Worker
	Status    PaymentStatus `json:"status"`

	LeaveDays decimal.Decimal `json:"leaveDays"` // Leave days cashed out in this payment

	// Breakdown, all computed by the calculator.
	Gross             decimal.Decimal `json:"gross"`
	LeaveCashout      decimal.Decimal `json:"leaveCashout"`
	DebtCleared       decimal.Decimal `json:"debtCleared"`
	TaxableAmount     decimal.Decimal `json:"taxableAmount"`
	TDS               decimal.Decimal `json:"tds"`
	NetBeforeRecovery decimal.Decimal `json:"netBeforeRecovery"`
	Recovered         decimal.Decimal `json:"recovered"`
	NetAmount         decimal.Decimal `json:"netAmount"`

	Snapshot BankSnapshot `json:"snapshot"`
	AuditFields
}
