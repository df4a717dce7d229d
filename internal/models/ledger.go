package models

import "github.com/shopspring/decimal"

// EntryType mirrors domain.EntryType for persistence.
type EntryType string

// TransactionCategory mirrors domain.TransactionCategory for persistence.
type TransactionCategory string

// AccountTransaction is the persistence model for a ledger row.
type AccountTransaction struct {
	TransactionID         string              `json:"transactionID"`
	WorkerID              string              `json:"workerID"`
	EntryType             EntryType           `json:"entryType"`
	Category              TransactionCategory `json:"category"`
	Amount                decimal.Decimal     `json:"amount"`
	BalanceAfter          decimal.Decimal     `json:"balanceAfter"`
	Description           string              `json:"description"`
	SourceType            *string             `json:"sourceType"`
	SourceID              *string             `json:"sourceID"`
	ReversesTransactionID *string             `json:"reversesTransactionID"`
	AuditFields
}

// LeaveTransaction is the persistence model for a leave-balance audit row.
type LeaveTransaction struct {
	LeaveTransactionID string          `json:"leaveTransactionID"`
	WorkerID           string          `json:"workerID"`
	DeltaDays          decimal.Decimal `json:"deltaDays"`
	BalanceAfter       decimal.Decimal `json:"balanceAfter"`
	PaymentID          *string         `json:"paymentID"`
	Description        string          `json:"description"`
	AuditFields
}

// DebtTransaction is the persistence model for a debt-balance audit row.
type DebtTransaction struct {
	DebtTransactionID string          `json:"debtTransactionID"`
	WorkerID          string          `json:"workerID"`
	Delta             decimal.Decimal `json:"delta"`
	BalanceAfter      decimal.Decimal `json:"balanceAfter"`
	SourceType        *string         `json:"sourceType"`
	SourceID          *string         `json:"sourceID"`
	Description       string          `json:"description"`
	AuditFields
}
