package services

import (
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/platform/config"
)

// NewServiceContainer creates and wires all application services.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	workerSvc := NewWorkerService(repos.WorkerRepo, repos.AuditRepo)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, repos.WorkerRepo)
	scheduleSvc := NewScheduleService(repos.ScheduleRepo, repos.AuditRepo)
	taxPeriodSvc := NewTaxPeriodService(repos.TaxPeriodRepo, repos.AuditRepo)
	manualPaymentSvc := NewManualPaymentService(repos.ManualPaymentRepo, repos.WorkerRepo, repos.AuditRepo)
	payrollRunSvc := NewPayrollRunService(cfg, repos.PayrollRunRepo, repos.WorkerRepo, repos.ScheduleRepo, repos.AuditRepo)
	debtRunSvc := NewDebtRunService(cfg, repos.DebtRunRepo, repos.WorkerRepo, repos.AuditRepo)

	return &portssvc.ServiceContainer{
		Worker:        workerSvc,
		Ledger:        ledgerSvc,
		PayrollRun:    payrollRunSvc,
		DebtRun:       debtRunSvc,
		ManualPayment: manualPaymentSvc,
		TaxPeriod:     taxPeriodSvc,
		Schedule:      scheduleSvc,
	}
}
