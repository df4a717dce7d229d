package models

import "github.com/shopspring/decimal"

// FilingStatus mirrors domain.FilingStatus for persistence.
type FilingStatus string

// TaxPeriodRecord is the persistence model for a monthly filing aggregate.
type TaxPeriodRecord struct {
	RecordID     string          `json:"recordID"`
	WorkerID     string          `json:"workerID"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalGross   decimal.Decimal `json:"totalGross"`
	TotalTDS     decimal.Decimal `json:"totalTDS"`
	TotalNet     decimal.Decimal `json:"totalNet"`
	PaymentCount int             `json:"paymentCount"`
	FilingStatus FilingStatus    `json:"filingStatus"`
	AuditFields
}

// ManualPaymentCategory mirrors domain.ManualPaymentCategory for persistence.
type ManualPaymentCategory string

// ManualPayment is the persistence model for a one-off payment.
type ManualPayment struct {
	ManualPaymentID string                `json:"manualPaymentID"`
	WorkerID        string                `json:"workerID"`
	Category        ManualPaymentCategory `json:"category"`
	EntryType       EntryType             `json:"entryType"`
	GrossAmount     decimal.Decimal       `json:"grossAmount"`
	IsTaxable       bool                  `json:"isTaxable"`
	TDS             decimal.Decimal       `json:"tds"`
	NetAmount       decimal.Decimal       `json:"netAmount"`
	Notes           string                `json:"notes"`
	AuditFields
}
