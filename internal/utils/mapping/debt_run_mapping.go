package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToModelDebtRun converts a domain DebtRun to a model DebtRun.
func ToModelDebtRun(d domain.DebtRun) models.DebtRun {
	return models.DebtRun{
		DebtRunID:    d.DebtRunID,
		RunDate:      d.RunDate,
		Status:       models.DebtRunStatus(d.Status),
		TotalAmount:  d.TotalAmount,
		TotalTDS:     d.TotalTDS,
		TotalNet:     d.TotalNet,
		PaymentCount: d.PaymentCount,
		PaidAt:       d.PaidAt,
		PaidBy:       d.PaidBy,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtRun converts a model DebtRun to a domain DebtRun.
func ToDomainDebtRun(m models.DebtRun) domain.DebtRun {
	return domain.DebtRun{
		DebtRunID:    m.DebtRunID,
		RunDate:      m.RunDate,
		Status:       domain.DebtRunStatus(m.Status),
		TotalAmount:  m.TotalAmount,
		TotalTDS:     m.TotalTDS,
		TotalNet:     m.TotalNet,
		PaymentCount: m.PaymentCount,
		PaidAt:       m.PaidAt,
		PaidBy:       m.PaidBy,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDebtPayment converts a domain DebtPayment to a model DebtPayment.
func ToModelDebtPayment(d domain.DebtPayment) models.DebtPayment {
	return models.DebtPayment{
		DebtPaymentID:     d.DebtPaymentID,
		DebtRunID:         d.DebtRunID,
		WorkerID:          d.WorkerID,
		Status:            models.PaymentStatus(d.Status),
		Amount:            d.Amount,
		TDS:               d.TDS,
		NetAmount:         d.NetAmount,
		SnapBankName:      d.Snapshot.BankName,
		SnapAccountNumber: d.Snapshot.AccountNumber,
		SnapIFSC:          d.Snapshot.IFSC,
		SnapPAN:           d.Snapshot.PAN,
		SnapTDSRatePct:    d.Snapshot.TDSRatePct,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtPayment converts a model DebtPayment to a domain DebtPayment.
func ToDomainDebtPayment(m models.DebtPayment) domain.DebtPayment {
	return domain.DebtPayment{
		DebtPaymentID: m.DebtPaymentID,
		DebtRunID:     m.DebtRunID,
		WorkerID:      m.WorkerID,
		Status:        domain.PaymentStatus(m.Status),
		Amount:        m.Amount,
		TDS:           m.TDS,
		NetAmount:     m.NetAmount,
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

// ToDomainDebtPaymentSlice converts model DebtPayments to domain DebtPayments.
func ToDomainDebtPaymentSlice(ms []models.DebtPayment) []domain.DebtPayment {
	ds := make([]domain.DebtPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebtPayment(m)
	}
	return ds
}
