package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	workerRepo := newPgxWorkerRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, workerRepo)
	taxRepo := newPgxTaxPeriodRepository(dbPool)
	scheduleRepo := newPgxScheduleRepository(dbPool)
	outboxRepo := newPgxOutboxRepository(dbPool)
	payrollRunRepo := newPgxPayrollRunRepository(dbPool, ledgerRepo, taxRepo, scheduleRepo, outboxRepo)
	debtRunRepo := newPgxDebtRunRepository(dbPool, ledgerRepo, taxRepo, outboxRepo)
	manualPaymentRepo := newPgxManualPaymentRepository(dbPool, ledgerRepo)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		WorkerRepo:        workerRepo,
		LedgerRepo:        ledgerRepo,
		PayrollRunRepo:    payrollRunRepo,
		DebtRunRepo:       debtRunRepo,
		TaxPeriodRepo:     taxRepo,
		ManualPaymentRepo: manualPaymentRepo,
		ScheduleRepo:      scheduleRepo,
		AuditRepo:         auditRepo,
		OutboxRepo:        outboxRepo,
	}
}
