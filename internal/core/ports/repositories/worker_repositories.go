package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// WorkerReader defines read operations for worker data
type WorkerReader interface {
	// FindWorkerByID retrieves a specific worker by its unique identifier.
	FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)

	// FindWorkersByIDs retrieves multiple workers by their IDs.
	FindWorkersByIDs(ctx context.Context, workerIDs []string) (map[string]domain.Worker, error)

	// ListWorkers retrieves a paginated list of workers using token-based pagination.
	// It returns the workers, a token for the next page, and an error.
	ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error)

	// ListEligibleWorkers retrieves all workers that can be included in a run
	// covering the given pay period.
	ListEligibleWorkers(ctx context.Context, periodStart time.Time, runDate time.Time) ([]domain.Worker, error)
}

// WorkerWriter defines write operations for worker data
type WorkerWriter interface {
	// SaveWorker persists a new worker.
	SaveWorker(ctx context.Context, worker domain.Worker) error

	// UpdateWorker updates an existing worker's details.
	UpdateWorker(ctx context.Context, worker domain.Worker) error

	// DeactivateWorker marks a worker as inactive.
	DeactivateWorker(ctx context.Context, workerID string, actor string, now time.Time) error
}

// WorkerTransactionSupport defines operations that support worker row locking
// and balance updates inside an enclosing transaction.
type WorkerTransactionSupport interface {
	// FindWorkersByIDsForUpdate selects workers and locks their rows for update within a transaction.
	FindWorkersByIDsForUpdate(ctx context.Context, tx pgx.Tx, workerIDs []string) (map[string]domain.Worker, error)

	// UpdateAccountBalanceInTx adjusts a worker's account balance by delta within a given transaction
	// and returns the resulting balance.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error)

	// UpdateLeaveBalanceInTx adjusts a worker's leave balance by deltaDays within a given transaction
	// and returns the resulting balance.
	UpdateLeaveBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, deltaDays decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error)

	// UpdateDebtBalanceInTx adjusts a worker's debt balance by delta within a given transaction
	// and returns the resulting balance.
	UpdateDebtBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error)
}

// WorkerRepositoryFacade combines all worker-related repository interfaces
// This is a facade for clients that need access to all operations
type WorkerRepositoryFacade interface {
	WorkerReader
	WorkerWriter
	WorkerTransactionSupport
}

// WorkerRepositoryWithTx extends WorkerRepositoryFacade with transaction capabilities
type WorkerRepositoryWithTx interface {
	WorkerRepositoryFacade
	TransactionManager
}
