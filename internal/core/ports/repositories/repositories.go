package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	WorkerRepo        WorkerRepositoryFacade
	LedgerRepo        LedgerRepositoryFacade
	PayrollRunRepo    PayrollRunRepositoryFacade
	DebtRunRepo       DebtRunRepositoryFacade
	TaxPeriodRepo     TaxPeriodRepositoryFacade
	ManualPaymentRepo ManualPaymentRepositoryFacade
	ScheduleRepo      ScheduleRepositoryFacade
	AuditRepo         AuditRepositoryFacade
	OutboxRepo        OutboxRepositoryFacade
}
