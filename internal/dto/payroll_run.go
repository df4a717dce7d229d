package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// RunWorkerInput selects one worker for an explicit payroll run, with the
// leave days to cash out and optionally the debt amount to fold in.
type RunWorkerInput struct {
	WorkerID   string          `json:"workerID" binding:"required"`
	LeaveDays  decimal.Decimal `json:"leaveDays"`
	DebtAmount decimal.Decimal `json:"debtAmount"`
}

// CreatePayrollRunRequest defines the data needed to create an explicit payroll run.
type CreatePayrollRunRequest struct {
	RunDate     time.Time        `json:"runDate" binding:"required"`
	PeriodStart *time.Time       `json:"periodStart"` // Defaults to one cycle before runDate
	Workers     []RunWorkerInput `json:"workers" binding:"required,min=1,dive"`
}

// UpdateRunStatusRequest moves a run through its lifecycle.
type UpdateRunStatusRequest struct {
	Status domain.RunStatus `json:"status" binding:"required,oneof=DRAFT PENDING PROCESSED PAID CANCELLED"`
}

// EditPaymentRequest re-derives a single payment before settlement.
// RunID identifies the run the payment belongs to.
type EditPaymentRequest struct {
	RunID      string          `json:"runID" binding:"required"`
	LeaveDays  decimal.Decimal `json:"leaveDays"`
	DebtAmount decimal.Decimal `json:"debtAmount"`
}

// GenerateRunsRequest triggers a schedule scan for overdue pay periods.
type GenerateRunsRequest struct {
	ScheduleID string     `json:"scheduleID" binding:"required"`
	AsOf       *time.Time `json:"asOf"` // Defaults to now
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID         string              `json:"paymentID"`
	RunID             string              `json:"runID"`
	WorkerID          string              `json:"workerID"`
	Status            string              `json:"status"`
	LeaveDays         decimal.Decimal     `json:"leaveDays"`
	Gross             decimal.Decimal     `json:"gross"`
	LeaveCashout      decimal.Decimal     `json:"leaveCashout"`
	DebtCleared       decimal.Decimal     `json:"debtCleared"`
	TaxableAmount     decimal.Decimal     `json:"taxableAmount"`
	TDS               decimal.Decimal     `json:"tds"`
	NetBeforeRecovery decimal.Decimal     `json:"netBeforeRecovery"`
	Recovered         decimal.Decimal     `json:"recovered"`
	NetAmount         decimal.Decimal     `json:"netAmount"`
	Snapshot          domain.BankSnapshot `json:"snapshot"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// PayrollRunResponse defines the data returned for a payroll run.
type PayrollRunResponse struct {
	RunID             string            `json:"runID"`
	RunDate           time.Time         `json:"runDate"`
	PeriodStart       time.Time         `json:"periodStart"`
	Status            domain.RunStatus  `json:"status"`
	Generated         bool              `json:"generated"`
	TotalGross        decimal.Decimal   `json:"totalGross"`
	TotalTDS          decimal.Decimal   `json:"totalTDS"`
	TotalNet          decimal.Decimal   `json:"totalNet"`
	TotalLeaveCashout decimal.Decimal   `json:"totalLeaveCashout"`
	TotalDebtCleared  decimal.Decimal   `json:"totalDebtCleared"`
	TotalRecovered    decimal.Decimal   `json:"totalRecovered"`
	PaymentCount      int               `json:"paymentCount"`
	ProcessedAt       *time.Time        `json:"processedAt,omitempty"`
	PaidAt            *time.Time        `json:"paidAt,omitempty"`
	SupersededByRunID *string           `json:"supersededByRunID,omitempty"`
	Payments          []PaymentResponse `json:"payments,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	CreatedBy         string            `json:"createdBy"`
}

// ListRunsParams defines query parameters for listing payroll runs.
type ListRunsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListRunsResponse wraps the paginated list of payroll runs.
type ListRunsResponse struct {
	Runs      []PayrollRunResponse `json:"runs"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		RunID:             p.RunID,
		WorkerID:          p.WorkerID,
		Status:            string(p.Status),
		LeaveDays:         p.LeaveDays,
		Gross:             p.Gross,
		LeaveCashout:      p.LeaveCashout,
		DebtCleared:       p.DebtCleared,
		TaxableAmount:     p.TaxableAmount,
		TDS:               p.TDS,
		NetBeforeRecovery: p.NetBeforeRecovery,
		Recovered:         p.Recovered,
		NetAmount:         p.NetAmount,
		Snapshot:          p.Snapshot,
		CreatedAt:         p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPaymentResponse(&p)
	}
	return responses
}

// ToPayrollRunResponse converts a domain.PayrollRun to PayrollRunResponse DTO
func ToPayrollRunResponse(r *domain.PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		RunID:             r.RunID,
		RunDate:           r.RunDate,
		PeriodStart:       r.PeriodStart,
		Status:            r.Status,
		Generated:         r.Generated,
		TotalGross:        r.TotalGross,
		TotalTDS:          r.TotalTDS,
		TotalNet:          r.TotalNet,
		TotalLeaveCashout: r.TotalLeaveCashout,
		TotalDebtCleared:  r.TotalDebtCleared,
		TotalRecovered:    r.TotalRecovered,
		PaymentCount:      r.PaymentCount,
		ProcessedAt:       r.ProcessedAt,
		PaidAt:            r.PaidAt,
		SupersededByRunID: r.SupersededByRunID,
		Payments:          ToPaymentResponses(r.Payments),
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

// ToListRunsResponse converts a slice of domain.PayrollRun to ListRunsResponse DTO
func ToListRunsResponse(runs []domain.PayrollRun, nextToken *string) ListRunsResponse {
	responses := make([]PayrollRunResponse, len(runs))
	for i, r := range runs {
		responses[i] = ToPayrollRunResponse(&r)
	}
	return ListRunsResponse{Runs: responses, NextToken: nextToken}
}
