package domain

import "github.com/shopspring/decimal"

// FilingStatus tracks a tax-period record through the monthly filing flow.
type FilingStatus string

const (
	FilingPending FilingStatus = "PENDING"
	FilingWaiting FilingStatus = "WAITING_FOR_FILING"
	FilingFiled   FilingStatus = "FILED"
	FilingPaid    FilingStatus = "PAID"
)

// CanAdvanceTo reports whether the filing status may move forward to target.
// Filing only moves forward; settlement reversals adjust amounts, not status.
func (s FilingStatus) CanAdvanceTo(target FilingStatus) bool {
	order := map[FilingStatus]int{
		FilingPending: 0,
		FilingWaiting: 1,
		FilingFiled:   2,
		FilingPaid:    3,
	}
	from, okFrom := order[s]
	to, okTo := order[target]
	return okFrom && okTo && to == from+1
}

// TaxPeriodRecord accumulates one worker's settled gross/TDS/net for a
// calendar month, keyed by (year, month, worker). Settlement increments it,
// revert decrements it, and the row is deleted when the payment count
// returns to zero.
type TaxPeriodRecord struct {
	RecordID     string          `json:"recordID"` // Primary Key (UUID)
	WorkerID     string          `json:"workerID"`
	Year         int             `json:"year"`
	Month        int             `json:"month"` // 1-12
	TotalGross   decimal.Decimal `json:"totalGross"`
	TotalTDS     decimal.Decimal `json:"totalTDS"`
	TotalNet     decimal.Decimal `json:"totalNet"`
	PaymentCount int             `json:"paymentCount"`
	FilingStatus FilingStatus    `json:"filingStatus"`
	AuditFields
}
