package repositories

import (
	"context"
	"time"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// DebtRunReader defines read operations for debt run data
type DebtRunReader interface {
	// FindDebtRunByID retrieves a specific debt run by its unique identifier,
	// including its payments.
	FindDebtRunByID(ctx context.Context, runID string) (*domain.DebtRun, error)

	// ListDebtRuns retrieves a paginated list of debt runs using token-based pagination,
	// newest first.
	ListDebtRuns(ctx context.Context, limit int, nextToken *string) ([]domain.DebtRun, *string, error)

	// FindDebtPaymentByID retrieves a specific debt payment by its unique identifier.
	FindDebtPaymentByID(ctx context.Context, paymentID string) (*domain.DebtPayment, error)
}

// DebtRunWriter defines write operations for debt run data
type DebtRunWriter interface {
	// SaveDebtRun persists a run and its payments. Effects, when non-empty,
	// are posted in the same transaction (posting at creation).
	SaveDebtRun(ctx context.Context, run domain.DebtRun, effects []PaymentEffects, actor string) error

	// UpdateDebtRunStatus updates a run's status and status timestamps without
	// touching balances.
	UpdateDebtRunStatus(ctx context.Context, run domain.DebtRun, actor string, now time.Time) error

	// CancelDebtRun marks the run cancelled, reversing any effects that were
	// posted at creation.
	CancelDebtRun(ctx context.Context, params RevertRunParams) error

	// SettleDebtRun atomically marks the run paid and applies every payment's
	// effects, skipping sources that already have effective ledger rows.
	SettleDebtRun(ctx context.Context, params SettleRunParams) (*SettleResult, error)

	// RevertPaidDebtRun atomically moves a paid run back to pending and
	// reverses every effect the settlement applied.
	RevertPaidDebtRun(ctx context.Context, params RevertRunParams) error
}

// DebtRunRepositoryFacade combines all debt-run repository interfaces
// This is a facade for clients that need access to all operations
type DebtRunRepositoryFacade interface {
	DebtRunReader
	DebtRunWriter
}

// DebtRunRepositoryWithTx extends DebtRunRepositoryFacade with transaction capabilities
type DebtRunRepositoryWithTx interface {
	DebtRunRepositoryFacade
	TransactionManager
}
