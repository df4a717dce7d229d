package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// DebtRunEntryInput selects one worker and the debt amount to settle.
type DebtRunEntryInput struct {
	WorkerID string          `json:"workerID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// CreateDebtRunRequest defines the data needed to create a debt run.
type CreateDebtRunRequest struct {
	RunDate time.Time           `json:"runDate" binding:"required"`
	Entries []DebtRunEntryInput `json:"entries" binding:"required,min=1,dive"`
}

// UpdateDebtRunStatusRequest moves a debt run through its lifecycle.
type UpdateDebtRunStatusRequest struct {
	Status domain.DebtRunStatus `json:"status" binding:"required,oneof=PENDING PROCESSED PAID CANCELLED"`
}

// DebtPaymentResponse defines the data returned for a debt payment.
type DebtPaymentResponse struct {
	DebtPaymentID string              `json:"debtPaymentID"`
	DebtRunID     string              `json:"debtRunID"`
	WorkerID      string              `json:"workerID"`
	Status        string              `json:"status"`
	Amount        decimal.Decimal     `json:"amount"`
	TDS           decimal.Decimal     `json:"tds"`
	NetAmount     decimal.Decimal     `json:"netAmount"`
	Snapshot      domain.BankSnapshot `json:"snapshot"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// DebtRunResponse defines the data returned for a debt run.
type DebtRunResponse struct {
	DebtRunID    string                `json:"debtRunID"`
	RunDate      time.Time             `json:"runDate"`
	Status       domain.DebtRunStatus  `json:"status"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	TotalTDS     decimal.Decimal       `json:"totalTDS"`
	TotalNet     decimal.Decimal       `json:"totalNet"`
	PaymentCount int                   `json:"paymentCount"`
	PaidAt       *time.Time            `json:"paidAt,omitempty"`
	Payments     []DebtPaymentResponse `json:"payments,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListDebtRunsParams defines query parameters for listing debt runs.
type ListDebtRunsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListDebtRunsResponse wraps the paginated list of debt runs.
type ListDebtRunsResponse struct {
	Runs      []DebtRunResponse `json:"runs"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToDebtPaymentResponse converts a domain.DebtPayment to DebtPaymentResponse DTO
func ToDebtPaymentResponse(p *domain.DebtPayment) DebtPaymentResponse {
	return DebtPaymentResponse{
		DebtPaymentID: p.DebtPaymentID,
		DebtRunID:     p.DebtRunID,
		WorkerID:      p.WorkerID,
		Status:        string(p.Status),
		Amount:        p.Amount,
		TDS:           p.TDS,
		NetAmount:     p.NetAmount,
		Snapshot:      p.Snapshot,
		CreatedAt:     p.CreatedAt,
	}
}

// ToDebtRunResponse converts a domain.DebtRun to DebtRunResponse DTO
func ToDebtRunResponse(r *domain.DebtRun) DebtRunResponse {
	payments := make([]DebtPaymentResponse, len(r.Payments))
	for i, p := range r.Payments {
		payments[i] = ToDebtPaymentResponse(&p)
	}
	return DebtRunResponse{
		DebtRunID:    r.DebtRunID,
		RunDate:      r.RunDate,
		Status:       r.Status,
		TotalAmount:  r.TotalAmount,
		TotalTDS:     r.TotalTDS,
		TotalNet:     r.TotalNet,
		PaymentCount: r.PaymentCount,
		PaidAt:       r.PaidAt,
		Payments:     payments,
		CreatedAt:    r.CreatedAt,
		CreatedBy:    r.CreatedBy,
	}
}

// ToListDebtRunsResponse converts a slice of domain.DebtRun to ListDebtRunsResponse DTO
func ToListDebtRunsResponse(runs []domain.DebtRun, nextToken *string) ListDebtRunsResponse {
	responses := make([]DebtRunResponse, len(runs))
	for i, r := range runs {
		responses[i] = ToDebtRunResponse(&r)
	}
	return ListDebtRunsResponse{Runs: responses, NextToken: nextToken}
}
