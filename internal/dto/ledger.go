package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID         string                     `json:"transactionID"`
	WorkerID              string                     `json:"workerID"`
	EntryType             domain.EntryType           `json:"entryType"`
	Category              domain.TransactionCategory `json:"category"`
	Amount                decimal.Decimal            `json:"amount"`
	BalanceAfter          decimal.Decimal            `json:"balanceAfter"`
	Description           string                     `json:"description"`
	SourceType            *domain.SourceType         `json:"sourceType,omitempty"`
	SourceID              *string                    `json:"sourceID,omitempty"`
	ReversesTransactionID *string                    `json:"reversesTransactionID,omitempty"`
	CreatedAt             time.Time                  `json:"createdAt"`
	CreatedBy             string                     `json:"createdBy"`
}

// LeaveTransactionResponse defines the data returned for a leave-balance change.
type LeaveTransactionResponse struct {
	LeaveTransactionID string          `json:"leaveTransactionID"`
	WorkerID           string          `json:"workerID"`
	DeltaDays          decimal.Decimal `json:"deltaDays"`
	BalanceAfter       decimal.Decimal `json:"balanceAfter"`
	PaymentID          *string         `json:"paymentID,omitempty"`
	Description        string          `json:"description"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// DebtTransactionResponse defines the data returned for a debt-balance change.
type DebtTransactionResponse struct {
	DebtTransactionID string             `json:"debtTransactionID"`
	WorkerID          string             `json:"workerID"`
	Delta             decimal.Decimal    `json:"delta"`
	BalanceAfter      decimal.Decimal    `json:"balanceAfter"`
	SourceType        *domain.SourceType `json:"sourceType,omitempty"`
	SourceID          *string            `json:"sourceID,omitempty"`
	Description       string             `json:"description"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for listing ledger rows.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps the paginated list of ledger transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListLeaveTransactionsResponse wraps the paginated leave audit trail.
type ListLeaveTransactionsResponse struct {
	Transactions []LeaveTransactionResponse `json:"transactions"`
	NextToken    *string                    `json:"nextToken,omitempty"`
}

// ListDebtTransactionsResponse wraps the paginated debt audit trail.
type ListDebtTransactionsResponse struct {
	Transactions []DebtTransactionResponse `json:"transactions"`
	NextToken    *string                   `json:"nextToken,omitempty"`
}

// WorkerBalanceResponse defines the data returned for a balance query.
type WorkerBalanceResponse struct {
	WorkerID       string          `json:"workerID"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	LeaveBalance   decimal.Decimal `json:"leaveBalance"`
	DebtBalance    decimal.Decimal `json:"debtBalance"`
}

// ToTransactionResponse converts a domain.AccountTransaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.AccountTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         t.TransactionID,
		WorkerID:              t.WorkerID,
		EntryType:             t.EntryType,
		Category:              t.Category,
		Amount:                t.Amount,
		BalanceAfter:          t.BalanceAfter,
		Description:           t.Description,
		SourceType:            t.SourceType,
		SourceID:              t.SourceID,
		ReversesTransactionID: t.ReversesTransactionID,
		CreatedAt:             t.CreatedAt,
		CreatedBy:             t.CreatedBy,
	}
}

// ToListTransactionsResponse converts ledger rows to ListTransactionsResponse DTO.
func ToListTransactionsResponse(txns []domain.AccountTransaction, nextToken *string) ListTransactionsResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(&t)
	}
	return ListTransactionsResponse{Transactions: responses, NextToken: nextToken}
}

// ToListLeaveTransactionsResponse converts leave audit rows to a response DTO.
func ToListLeaveTransactionsResponse(txns []domain.LeaveTransaction, nextToken *string) ListLeaveTransactionsResponse {
	responses := make([]LeaveTransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = LeaveTransactionResponse{
			LeaveTransactionID: t.LeaveTransactionID,
			WorkerID:           t.WorkerID,
			DeltaDays:          t.DeltaDays,
			BalanceAfter:       t.BalanceAfter,
			PaymentID:          t.PaymentID,
			Description:        t.Description,
			CreatedAt:          t.CreatedAt,
		}
	}
	return ListLeaveTransactionsResponse{Transactions: responses, NextToken: nextToken}
}

// ToListDebtTransactionsResponse converts debt audit rows to a response DTO.
func ToListDebtTransactionsResponse(txns []domain.DebtTransaction, nextToken *string) ListDebtTransactionsResponse {
	responses := make([]DebtTransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = DebtTransactionResponse{
			DebtTransactionID: t.DebtTransactionID,
			WorkerID:          t.WorkerID,
			Delta:             t.Delta,
			BalanceAfter:      t.BalanceAfter,
			SourceType:        t.SourceType,
			SourceID:          t.SourceID,
			Description:       t.Description,
			CreatedAt:         t.CreatedAt,
		}
	}
	return ListDebtTransactionsResponse{Transactions: responses, NextToken: nextToken}
}
