package domain

import "github.com/shopspring/decimal"

// ManualPaymentCategory classifies a one-off payment outside the run flows.
type ManualPaymentCategory string

const (
	ManualAdvance       ManualPaymentCategory = "ADVANCE"
	ManualBonus         ManualPaymentCategory = "BONUS"
	ManualReimbursement ManualPaymentCategory = "REIMBURSEMENT"
	ManualLoan          ManualPaymentCategory = "LOAN"
	ManualAdjustment    ManualPaymentCategory = "ADJUSTMENT"
)

// Valid reports whether c is a known manual payment category.
func (c ManualPaymentCategory) Valid() bool {
	switch c {
	case ManualAdvance, ManualBonus, ManualReimbursement, ManualLoan, ManualAdjustment:
		return true
	default:
		return false
	}
}

// LedgerCategory maps the manual payment category onto the ledger's closed
// category set.
func (c ManualPaymentCategory) LedgerCategory() TransactionCategory {
	switch c {
	case ManualAdvance:
		return CategoryAdvance
	case ManualBonus:
		return CategoryBonus
	case ManualReimbursement:
		return CategoryReimbursement
	case ManualLoan:
		return CategoryLoan
	case ManualAdjustment:
		return CategoryAdjustment
	default:
		return CategoryAdjustment
	}
}

// DefaultEntryType returns the ledger direction implied by the category.
// Advances and loans put the worker in the employer's debt (DEBIT); bonuses
// and reimbursements are owed to the worker (CREDIT). Adjustments carry an
// explicit direction chosen by the caller.
func (c ManualPaymentCategory) DefaultEntryType() EntryType {
	switch c {
	case ManualAdvance, ManualLoan:
		return Debit
	case ManualBonus, ManualReimbursement, ManualAdjustment:
		return Credit
	default:
		return Credit
	}
}

// ManualPayment is a one-off advance/bonus/reimbursement/loan/adjustment.
// Recording one always produces exactly one AccountTransaction.
type ManualPayment struct {
	ManualPaymentID string                `json:"manualPaymentID"` // Primary Key (UUID)
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
