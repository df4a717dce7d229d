package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger row credits or debits the worker's
// account balance. CREDIT raises the signed balance, DEBIT lowers it.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// TransactionCategory is the closed set of ledger row categories. Every
// consumption site switches exhaustively over these; free-form strings are
// not accepted.
type TransactionCategory string

const (
	CategorySalary          TransactionCategory = "SALARY"
	CategoryDebtPayout      TransactionCategory = "DEBT_PAYOUT"
	CategoryAdvanceRecovery TransactionCategory = "ADVANCE_RECOVERY"
	CategoryAdvance         TransactionCategory = "ADVANCE"
	CategoryBonus           TransactionCategory = "BONUS"
	CategoryReimbursement   TransactionCategory = "REIMBURSEMENT"
	CategoryLoan            TransactionCategory = "LOAN"
	CategoryAdjustment      TransactionCategory = "ADJUSTMENT"
)

// Valid reports whether c is a known category.
func (c TransactionCategory) Valid() bool {
	switch c {
	case CategorySalary, CategoryDebtPayout, CategoryAdvanceRecovery,
		CategoryAdvance, CategoryBonus, CategoryReimbursement,
		CategoryLoan, CategoryAdjustment:
		return true
	default:
		return false
	}
}

// SourceType identifies the originating record a ledger row is linked to.
// The (sourceType, sourceID) pair drives the idempotency check that makes
// settlement safe under retries and reprocessing.
type SourceType string

const (
	SourcePayment       SourceType = "PAYMENT"
	SourceDebtPayment   SourceType = "DEBT_PAYMENT"
	SourceManualPayment SourceType = "MANUAL_PAYMENT"
)

// AccountTransaction is one append-only row of the per-worker ledger.
// Rows are never edited; corrections append a reversal row pointing back at
// the original via ReversesTransactionID.
type AccountTransaction struct {
	TransactionID         string              `json:"transactionID"` // Primary Key (UUID)
	WorkerID              string              `json:"workerID"`      // FK -> Worker
	EntryType             EntryType           `json:"entryType"`
	Category              TransactionCategory `json:"category"`
	Amount                decimal.Decimal     `json:"amount"`       // Always >= 0
	BalanceAfter          decimal.Decimal     `json:"balanceAfter"` // Account balance after posting this row
	Description           string              `json:"description"`
	SourceType            *SourceType         `json:"sourceType,omitempty"`
	SourceID              *string             `json:"sourceID,omitempty"`
	ReversesTransactionID *string             `json:"reversesTransactionID,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with the sign it applies to the account
// balance: positive for CREDIT, negative for DEBIT.
func (t AccountTransaction) SignedAmount() (decimal.Decimal, error) {
	switch t.EntryType {
	case Credit:
		return t.Amount, nil
	case Debit:
		return t.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown entry type %q on transaction %s", t.EntryType, t.TransactionID)
	}
}
