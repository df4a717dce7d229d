package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToModelLeaveTransaction converts a domain leave audit row to its model form.
func ToModelLeaveTransaction(d domain.LeaveTransaction) models.LeaveTransaction {
	return models.LeaveTransaction{
		LeaveTransactionID: d.LeaveTransactionID,
		WorkerID:           d.WorkerID,
		DeltaDays:          d.DeltaDays,
		BalanceAfter:       d.BalanceAfter,
		PaymentID:          d.PaymentID,
		Description:        d.Description,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLeaveTransaction converts a model leave audit row to its domain form.
func ToDomainLeaveTransaction(m models.LeaveTransaction) domain.LeaveTransaction {
	return domain.LeaveTransaction{
		LeaveTransactionID: m.LeaveTransactionID,
		WorkerID:           m.WorkerID,
		DeltaDays:          m.DeltaDays,
		BalanceAfter:       m.BalanceAfter,
		PaymentID:          m.PaymentID,
		Description:        m.Description,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLeaveTransactionSlice converts model leave rows to domain rows.
func ToDomainLeaveTransactionSlice(ms []models.LeaveTransaction) []domain.LeaveTransaction {
	ds := make([]domain.LeaveTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLeaveTransaction(m)
	}
	return ds
}

// ToModelDebtTransaction converts a domain debt audit row to its model form.
func ToModelDebtTransaction(d domain.DebtTransaction) models.DebtTransaction {
	var sourceType *string
	if d.SourceType != nil {
		s := string(*d.SourceType)
		sourceType = &s
	}
	return models.DebtTransaction{
		DebtTransactionID: d.DebtTransactionID,
		WorkerID:          d.WorkerID,
		Delta:             d.Delta,
		BalanceAfter:      d.BalanceAfter,
		SourceType:        sourceType,
		SourceID:          d.SourceID,
		Description:       d.Description,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtTransaction converts a model debt audit row to its domain form.
func ToDomainDebtTransaction(m models.DebtTransaction) domain.DebtTransaction {
	var sourceType *domain.SourceType
	if m.SourceType != nil {
		s := domain.SourceType(*m.SourceType)
		sourceType = &s
	}
	return domain.DebtTransaction{
		DebtTransactionID: m.DebtTransactionID,
		WorkerID:          m.WorkerID,
		Delta:             m.Delta,
		BalanceAfter:      m.BalanceAfter,
		SourceType:        sourceType,
		SourceID:          m.SourceID,
		Description:       m.Description,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtTransactionSlice converts model debt rows to domain rows.
func ToDomainDebtTransactionSlice(ms []models.DebtTransaction) []domain.DebtTransaction {
	ds := make([]domain.DebtTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebtTransaction(m)
	}
	return ds
}
