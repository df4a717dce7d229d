package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus mirrors domain.EmploymentStatus for persistence.
type EmploymentStatus string

// Worker is the persistence model for a contractor row.
type Worker struct {
	WorkerID        string           `json:"workerID"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Status          EmploymentStatus `json:"status"`
	JoinDate        time.Time        `json:"joinDate"`
	TerminationDate *time.Time       `json:"terminationDate"`
	CycleGrossPay   decimal.Decimal  `json:"cycleGrossPay"`
	TDSRatePct      decimal.Decimal  `json:"tdsRatePct"`
	LeaveBalance    decimal.Decimal  `json:"leaveBalance"`
	DebtBalance     decimal.Decimal  `json:"debtBalance"`
	AccountBalance  decimal.Decimal  `json:"accountBalance"`
	BankName        string           `json:"bankName"`
	AccountNumber   string           `json:"accountNumber"`
	IFSC            string           `json:"ifsc"`
	PAN             string           `json:"pan"`
	AuditFields
}
