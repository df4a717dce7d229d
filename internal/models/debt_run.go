package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtRunStatus mirrors domain.DebtRunStatus for persistence.
type DebtRunStatus string

// DebtRun is the persistence model for a standalone debt payout batch.
type DebtRun struct {
	DebtRunID    string          `json:"debtRunID"`
	RunDate      time.Time       `json:"runDate"`
	Status       DebtRunStatus   `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalTDS     decimal.Decimal `json:"totalTDS"`
	TotalNet     decimal.Decimal `json:"totalNet"`
	PaymentCount int             `json:"paymentCount"`
	PaidAt       *time.Time      `json:"paidAt"`
	PaidBy       *string         `json:"paidBy"`
	AuditFields
}

// DebtPayment is the persistence model for one debt settlement row.
type DebtPayment struct {
	DebtPaymentID     string          `json:"debtPaymentID"`
	DebtRunID         string          `json:"debtRunID"`
	WorkerID          string          `json:"workerID"`
	Status            PaymentStatus   `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	TDS               decimal.Decimal `json:"tds"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	SnapBankName      string          `json:"snapBankName"`
	SnapAccountNumber string          `json:"snapAccountNumber"`
	SnapIFSC          string          `json:"snapIFSC"`
	SnapPAN           string          `json:"snapPAN"`
	SnapTDSRatePct    decimal.Decimal `json:"snapTDSRatePct"`
	AuditFields
}
