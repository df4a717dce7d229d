package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// UpdateFilingStatusRequest advances a tax period record's filing status.
type UpdateFilingStatusRequest struct {
	Status domain.FilingStatus `json:"status" binding:"required,oneof=PENDING WAITING_FOR_FILING FILED PAID"`
}

// TaxPeriodRecordResponse defines the data returned for a monthly tax record.
type TaxPeriodRecordResponse struct {
	RecordID      string              `json:"recordID"`
	WorkerID      string              `json:"workerID"`
	Year          int                 `json:"year"`
	Month         int                 `json:"month"`
	TotalGross    decimal.Decimal     `json:"totalGross"`
	TotalTDS      decimal.Decimal     `json:"totalTDS"`
	TotalNet      decimal.Decimal     `json:"totalNet"`
	PaymentCount  int                 `json:"paymentCount"`
	FilingStatus  domain.FilingStatus `json:"filingStatus"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ListTaxRecordsParams defines query parameters for listing a worker's tax records.
type ListTaxRecordsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTaxRecordsResponse wraps a list of tax period records.
type ListTaxRecordsResponse struct {
	Records   []TaxPeriodRecordResponse `json:"records"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ToTaxPeriodRecordResponse converts a domain.TaxPeriodRecord to its DTO.
func ToTaxPeriodRecordResponse(r *domain.TaxPeriodRecord) TaxPeriodRecordResponse {
	return TaxPeriodRecordResponse{
		RecordID:      r.RecordID,
		WorkerID:      r.WorkerID,
		Year:          r.Year,
		Month:         r.Month,
		TotalGross:    r.TotalGross,
		TotalTDS:      r.TotalTDS,
		TotalNet:      r.TotalNet,
		PaymentCount:  r.PaymentCount,
		FilingStatus:  r.FilingStatus,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

// ToListTaxRecordsResponse converts records to ListTaxRecordsResponse DTO.
func ToListTaxRecordsResponse(records []domain.TaxPeriodRecord, nextToken *string) ListTaxRecordsResponse {
	responses := make([]TaxPeriodRecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToTaxPeriodRecordResponse(&r)
	}
	return ListTaxRecordsResponse{Records: responses, NextToken: nextToken}
}
