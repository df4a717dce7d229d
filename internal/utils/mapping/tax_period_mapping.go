package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToDomainTaxPeriodRecord converts a model filing record to its domain form.
func ToDomainTaxPeriodRecord(m models.TaxPeriodRecord) domain.TaxPeriodRecord {
	return domain.TaxPeriodRecord{
		RecordID:     m.RecordID,
		WorkerID:     m.WorkerID,
		Year:         m.Year,
		Month:        m.Month,
		TotalGross:   m.TotalGross,
		TotalTDS:     m.TotalTDS,
		TotalNet:     m.TotalNet,
		PaymentCount: m.PaymentCount,
		FilingStatus: domain.FilingStatus(m.FilingStatus),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelManualPayment converts a domain manual payment to its model form.
func ToModelManualPayment(d domain.ManualPayment) models.ManualPayment {
	return models.ManualPayment{
		ManualPaymentID: d.ManualPaymentID,
		WorkerID:        d.WorkerID,
		Category:        models.ManualPaymentCategory(d.Category),
		EntryType:       models.EntryType(d.EntryType),
		GrossAmount:     d.GrossAmount,
		IsTaxable:       d.IsTaxable,
		TDS:             d.TDS,
		NetAmount:       d.NetAmount,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainManualPayment converts a model manual payment to its domain form.
func ToDomainManualPayment(m models.ManualPayment) domain.ManualPayment {
	return domain.ManualPayment{
		ManualPaymentID: m.ManualPaymentID,
		WorkerID:        m.WorkerID,
		Category:        domain.ManualPaymentCategory(m.Category),
		EntryType:       domain.EntryType(m.EntryType),
		GrossAmount:     m.GrossAmount,
		IsTaxable:       m.IsTaxable,
		TDS:             m.TDS,
		NetAmount:       m.NetAmount,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
