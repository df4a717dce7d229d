package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus mirrors domain.RunStatus for persistence.
type RunStatus string

// PaymentStatus mirrors domain.PaymentStatus for persistence.
type PaymentStatus string

// PayrollRun is the persistence model for a payout batch.
type PayrollRun struct {
	RunID             string          `json:"runID"`
	RunDate           time.Time       `json:"runDate"`
	PeriodStart       time.Time       `json:"periodStart"`
	Status            RunStatus       `json:"status"`
	Generated         bool            `json:"generated"`
	TotalGross        decimal.Decimal `json:"totalGross"`
	TotalTDS          decimal.Decimal `json:"totalTDS"`
	TotalNet          decimal.Decimal `json:"totalNet"`
	TotalLeaveCashout decimal.Decimal `json:"totalLeaveCashout"`
	TotalDebtCleared  decimal.Decimal `json:"totalDebtCleared"`
	TotalRecovered    decimal.Decimal `json:"totalRecovered"`
	PaymentCount      int             `json:"paymentCount"`
	ProcessedAt       *time.Time      `json:"processedAt"`
	ProcessedBy       *string         `json:"processedBy"`
	PaidAt            *time.Time      `json:"paidAt"`
	PaidBy            *string         `json:"paidBy"`
	SupersededByRunID *string         `json:"supersededByRunID"`
	AuditFields
}

// Payment is the persistence model for one worker's payout within a run.
// Snapshot columns are written once at insert and never updated.
type Payment struct {
	PaymentID         string          `json:"paymentID"`
	RunID             string          `json:"runID"`
	WorkerID          string          `json:"workerID"`
	Status            PaymentStatus   `json:"status"`
	LeaveDays         decimal.Decimal `json:"leaveDays"`
	Gross             decimal.Decimal `json:"gross"`
	LeaveCashout      decimal.Decimal `json:"leaveCashout"`
	DebtCleared       decimal.Decimal `json:"debtCleared"`
	TaxableAmount     decimal.Decimal `json:"taxableAmount"`
	TDS               decimal.Decimal `json:"tds"`
	NetBeforeRecovery decimal.Decimal `json:"netBeforeRecovery"`
	Recovered         decimal.Decimal `json:"recovered"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	SnapBankName      string          `json:"snapBankName"`
	SnapAccountNumber string          `json:"snapAccountNumber"`
	SnapIFSC          string          `json:"snapIFSC"`
	SnapPAN           string          `json:"snapPAN"`
	SnapTDSRatePct    decimal.Decimal `json:"snapTDSRatePct"`
	AuditFields
}
