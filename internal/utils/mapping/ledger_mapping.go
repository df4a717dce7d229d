package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToModelAccountTransaction converts a domain ledger row to its model form.
func ToModelAccountTransaction(d domain.AccountTransaction) models.AccountTransaction {
	var sourceType *string
	if d.SourceType != nil {
		s := string(*d.SourceType)
		sourceType = &s
	}
	return models.AccountTransaction{
		TransactionID:         d.TransactionID,
		WorkerID:              d.WorkerID,
		EntryType:             models.EntryType(d.EntryType),
		Category:              models.TransactionCategory(d.Category),
		Amount:                d.Amount,
		BalanceAfter:          d.BalanceAfter,
		Description:           d.Description,
		SourceType:            sourceType,
		SourceID:              d.SourceID,
		ReversesTransactionID: d.ReversesTransactionID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountTransaction converts a model ledger row to its domain form.
func ToDomainAccountTransaction(m models.AccountTransaction) domain.AccountTransaction {
	var sourceType *domain.SourceType
	if m.SourceType != nil {
		s := domain.SourceType(*m.SourceType)
		sourceType = &s
	}
	return domain.AccountTransaction{
		TransactionID:         m.TransactionID,
		WorkerID:              m.WorkerID,
		EntryType:             domain.EntryType(m.EntryType),
		Category:              domain.TransactionCategory(m.Category),
		Amount:                m.Amount,
		BalanceAfter:          m.BalanceAfter,
		Description:           m.Description,
		SourceType:            sourceType,
		SourceID:              m.SourceID,
		ReversesTransactionID: m.ReversesTransactionID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountTransactionSlice converts model ledger rows to domain rows.
func ToDomainAccountTransactionSlice(ms []models.AccountTransaction) []domain.AccountTransaction {
	ds := make([]domain.AccountTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountTransaction(m)
	}
	return ds
}
