package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToModelPayrollRun converts a domain PayrollRun to a model PayrollRun.
func ToModelPayrollRun(d domain.PayrollRun) models.PayrollRun {
	return models.PayrollRun{
		RunID:             d.RunID,
		RunDate:           d.RunDate,
		PeriodStart:       d.PeriodStart,
		Status:            models.RunStatus(d.Status),
		Generated:         d.Generated,
		TotalGross:        d.TotalGross,
		TotalTDS:          d.TotalTDS,
		TotalNet:          d.TotalNet,
		TotalLeaveCashout: d.TotalLeaveCashout,
		TotalDebtCleared:  d.TotalDebtCleared,
		TotalRecovered:    d.TotalRecovered,
		PaymentCount:      d.PaymentCount,
		ProcessedAt:       d.ProcessedAt,
		ProcessedBy:       d.ProcessedBy,
		PaidAt:            d.PaidAt,
		PaidBy:            d.PaidBy,
		SupersededByRunID: d.SupersededByRunID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollRun converts a model PayrollRun to a domain PayrollRun.
func ToDomainPayrollRun(m models.PayrollRun) domain.PayrollRun {
	return domain.PayrollRun{
		RunID:             m.RunID,
		RunDate:           m.RunDate,
		PeriodStart:       m.PeriodStart,
		Status:            domain.RunStatus(m.Status),
		Generated:         m.Generated,
		TotalGross:        m.TotalGross,
		TotalTDS:          m.TotalTDS,
		TotalNet:          m.TotalNet,
		TotalLeaveCashout: m.TotalLeaveCashout,
		TotalDebtCleared:  m.TotalDebtCleared,
		TotalRecovered:    m.TotalRecovered,
		PaymentCount:      m.PaymentCount,
		ProcessedAt:       m.ProcessedAt,
		ProcessedBy:       m.ProcessedBy,
		PaidAt:            m.PaidAt,
		PaidBy:            m.PaidBy,
		SupersededByRunID: m.SupersededByRunID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:         d.PaymentID,
		RunID:             d.RunID,
		WorkerID:          d.WorkerID,
		Status:            models.PaymentStatus(d.Status),
		LeaveDays:         d.LeaveDays,
		Gross:             d.Gross,
		LeaveCashout:      d.LeaveCashout,
		DebtCleared:       d.DebtCleared,
		TaxableAmount:     d.TaxableAmount,
		TDS:               d.TDS,
		NetBeforeRecovery: d.NetBeforeRecovery,
		Recovered:         d.Recovered,
		NetAmount:         d.NetAmount,
		SnapBankName:      d.Snapshot.BankName,
		SnapAccountNumber: d.Snapshot.AccountNumber,
		SnapIFSC:          d.Snapshot.IFSC,
		SnapPAN:           d.Snapshot.PAN,
		SnapTDSRatePct:    d.Snapshot.TDSRatePct,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:         m.PaymentID,
		RunID:             m.RunID,
		WorkerID:          m.WorkerID,
		Status:            domain.PaymentStatus(m.Status),
		LeaveDays:         m.LeaveDays,
		Gross:             m.Gross,
		LeaveCashout:      m.LeaveCashout,
		DebtCleared:       m.DebtCleared,
		TaxableAmount:     m.TaxableAmount,
		TDS:               m.TDS,
		NetBeforeRecovery: m.NetBeforeRecovery,
		Recovered:         m.Recovered,
		NetAmount:         m.NetAmount,
		Snapshot: domain.BankSnapshot{
			BankName:      m.SnapBankName,
			AccountNumber: m.SnapAccountNumber,
			IFSC:          m.SnapIFSC,
			PAN:           m.SnapPAN,
			TDSRatePct:    m.SnapTDSRatePct,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts model Payments to domain Payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
