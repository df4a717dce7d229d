package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus is the lifecycle flag of a worker record. Workers are
// never deleted; end of life is expressed through this status.
type EmploymentStatus string

const (
	Active     EmploymentStatus = "ACTIVE"
	Inactive   EmploymentStatus = "INACTIVE"
	Terminated EmploymentStatus = "TERMINATED"
)

// BankDetails is the payout destination for a worker. A copy of these is
// frozen into each Payment as a BankSnapshot so later edits never rewrite
// historical evidence.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	PAN           string `json:"pan"`
}

// Worker is a contractor on the payout roll.
type Worker struct {
	WorkerID        string           `json:"workerID"` // Primary Key (UUID)
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Status          EmploymentStatus `json:"status"`
	JoinDate        time.Time        `json:"joinDate"`
	TerminationDate *time.Time       `json:"terminationDate,omitempty"`
	CycleGrossPay   decimal.Decimal  `json:"cycleGrossPay"` // Recurring gross per pay cycle
	TDSRatePct      decimal.Decimal  `json:"tdsRatePct"`    // Withholding rate, percent
	LeaveBalance    decimal.Decimal  `json:"leaveBalance"`  // Days
	DebtBalance     decimal.Decimal  `json:"debtBalance"`
	AccountBalance  decimal.Decimal  `json:"accountBalance"` // Signed; positive = employer owes worker
	Bank            BankDetails      `json:"bank"`
	AuditFields
}

// EligibleForRun reports whether the worker should receive a payment in an
// auto-generated run covering [periodStart, runDate]. ACTIVE workers are
// eligible, as are TERMINATED workers whose termination falls after the
// period start. INACTIVE workers and workers who joined after the run date
// are not.
func (w Worker) EligibleForRun(periodStart, runDate time.Time) bool {
	if w.JoinDate.After(runDate) {
		return false
	}
	switch w.Status {
	case Active:
		return true
	case Terminated:
		return w.TerminationDate != nil && w.TerminationDate.After(periodStart)
	case Inactive:
		return false
	default:
		return false
	}
}
