package mapping

import (
	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/models"
)

// ToDomainWorker converts a model Worker to a domain Worker.
func ToDomainWorker(m models.Worker) domain.Worker {
	return domain.Worker{
		WorkerID:        m.WorkerID,
		Name:            m.Name,
		Email:           m.Email,
		Status:          domain.EmploymentStatus(m.Status),
		JoinDate:        m.JoinDate,
		TerminationDate: m.TerminationDate,
		CycleGrossPay:   m.CycleGrossPay,
		TDSRatePct:      m.TDSRatePct,
		LeaveBalance:    m.LeaveBalance,
		DebtBalance:     m.DebtBalance,
		AccountBalance:  m.AccountBalance,
		Bank: domain.BankDetails{
			BankName:      m.BankName,
			AccountNumber: m.AccountNumber,
			IFSC:          m.IFSC,
			PAN:           m.PAN,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWorker converts a domain Worker to a model Worker.
func ToModelWorker(d domain.Worker) models.Worker {
	return models.Worker{
		WorkerID:        d.WorkerID,
		Name:            d.Name,
		Email:           d.Email,
		Status:          models.EmploymentStatus(d.Status),
		JoinDate:        d.JoinDate,
		TerminationDate: d.TerminationDate,
		CycleGrossPay:   d.CycleGrossPay,
		TDSRatePct:      d.TDSRatePct,
		LeaveBalance:    d.LeaveBalance,
		DebtBalance:     d.DebtBalance,
		AccountBalance:  d.AccountBalance,
		BankName:        d.Bank.BankName,
		AccountNumber:   d.Bank.AccountNumber,
		IFSC:            d.Bank.IFSC,
		PAN:             d.Bank.PAN,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}
