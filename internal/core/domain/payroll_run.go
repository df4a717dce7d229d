package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus is the settlement lifecycle state of a payroll run.
type RunStatus string

const (
	RunDraft     RunStatus = "DRAFT"
	RunPending   RunStatus = "PENDING"
	RunProcessed RunStatus = "PROCESSED"
	RunPaid      RunStatus = "PAID"
	RunCancelled RunStatus = "CANCELLED"
)

// CanTransitionTo reports whether the run status may move to target.
// PAID and CANCELLED are terminal except for the PAID->PENDING revert.
func (s RunStatus) CanTransitionTo(target RunStatus) bool {
	switch s {
	case RunDraft:
		return target == RunPending
	case RunPending:
		return target == RunDraft || target == RunProcessed || target == RunCancelled
	case RunProcessed:
		return target == RunPaid || target == RunPending
	case RunPaid:
		return target == RunPending
	case RunCancelled:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether no forward transition exists from s.
func (s RunStatus) IsTerminal() bool {
	return s == RunCancelled
}

// PayrollRun is one payout batch covering a single pay period.
// Totals are always recomputed as a sum over the run's payments.
type PayrollRun struct {
	RunID             string          `json:"runID"` // Primary Key (UUID)
	RunDate           time.Time       `json:"runDate"`
	PeriodStart       time.Time       `json:"periodStart"`
	Status            RunStatus       `json:"status"`
	Generated         bool            `json:"generated"` // true for schedule-driven runs
	TotalGross        decimal.Decimal `json:"totalGross"`
	TotalTDS          decimal.Decimal `json:"totalTDS"`
	TotalNet          decimal.Decimal `json:"totalNet"`
	TotalLeaveCashout decimal.Decimal `json:"totalLeaveCashout"`
	TotalDebtCleared  decimal.Decimal `json:"totalDebtCleared"`
	TotalRecovered    decimal.Decimal `json:"totalRecovered"`
	PaymentCount      int             `json:"paymentCount"`
	ProcessedAt       *time.Time      `json:"processedAt,omitempty"`
	ProcessedBy       *string         `json:"processedBy,omitempty"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	PaidBy            *string         `json:"paidBy,omitempty"`
	SupersededByRunID *string         `json:"supersededByRunID,omitempty"` // Set when a re-run replaces this run
	AuditFields

	Payments []Payment `json:"payments,omitempty"` // Loaded separately
}

// RecomputeTotals rebuilds the run-level aggregates from its payments.
func (r *PayrollRun) RecomputeTotals(payments []Payment) {
	gross, tds, net := decimal.Zero, decimal.Zero, decimal.Zero
	cashout, debt, recovered := decimal.Zero, decimal.Zero, decimal.Zero
	for _, p := range payments {
		gross = gross.Add(p.Gross)
		tds = tds.Add(p.TDS)
		net = net.Add(p.NetAmount)
		cashout = cashout.Add(p.LeaveCashout)
		debt = debt.Add(p.DebtCleared)
		recovered = recovered.Add(p.Recovered)
	}
	r.TotalGross = gross
	r.TotalTDS = tds
	r.TotalNet = net
	r.TotalLeaveCashout = cashout
	r.TotalDebtCleared = debt
	r.TotalRecovered = recovered
	r.PaymentCount = len(payments)
}
