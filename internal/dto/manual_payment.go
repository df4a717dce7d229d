package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// CreateManualPaymentRequest defines the data needed to record a one-off payment.
type CreateManualPaymentRequest struct {
	WorkerID    string                       `json:"workerID" binding:"required"`
	Category    domain.ManualPaymentCategory `json:"category" binding:"required,oneof=ADVANCE BONUS REIMBURSEMENT LOAN ADJUSTMENT"`
	GrossAmount decimal.Decimal              `json:"grossAmount" binding:"required"`
	IsTaxable   bool                         `json:"isTaxable"`
	// EntryType is only honored for ADJUSTMENT; other categories imply their direction.
	EntryType *domain.EntryType `json:"entryType" binding:"omitempty,oneof=CREDIT DEBIT"`
	Notes     string            `json:"notes"`
}

// ManualPaymentResponse defines the data returned for a manual payment.
type ManualPaymentResponse struct {
	ManualPaymentID string                       `json:"manualPaymentID"`
	WorkerID        string                       `json:"workerID"`
	Category        domain.ManualPaymentCategory `json:"category"`
	EntryType       domain.EntryType             `json:"entryType"`
	GrossAmount     decimal.Decimal              `json:"grossAmount"`
	IsTaxable       bool                         `json:"isTaxable"`
	TDS             decimal.Decimal              `json:"tds"`
	NetAmount       decimal.Decimal              `json:"netAmount"`
	Notes           string                       `json:"notes"`
	CreatedAt       time.Time                    `json:"createdAt"`
	CreatedBy       string                       `json:"createdBy"`
}

// ListManualPaymentsParams defines query parameters for listing manual payments.
type ListManualPaymentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListManualPaymentsResponse wraps the paginated list of manual payments.
type ListManualPaymentsResponse struct {
	Payments  []ManualPaymentResponse `json:"payments"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToManualPaymentResponse converts a domain.ManualPayment to its DTO.
func ToManualPaymentResponse(p *domain.ManualPayment) ManualPaymentResponse {
	return ManualPaymentResponse{
		ManualPaymentID: p.ManualPaymentID,
		WorkerID:        p.WorkerID,
		Category:        p.Category,
		EntryType:       p.EntryType,
		GrossAmount:     p.GrossAmount,
		IsTaxable:       p.IsTaxable,
		TDS:             p.TDS,
		NetAmount:       p.NetAmount,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ToListManualPaymentsResponse converts manual payments to a list response DTO.
func ToListManualPaymentsResponse(payments []domain.ManualPayment, nextToken *string) ListManualPaymentsResponse {
	responses := make([]ManualPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToManualPaymentResponse(&p)
	}
	return ListManualPaymentsResponse{Payments: responses, NextToken: nextToken}
}
