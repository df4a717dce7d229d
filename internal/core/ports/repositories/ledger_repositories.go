package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// LedgerReader defines read operations for account ledger data
type LedgerReader interface {
	// FindTransactionByID retrieves a specific ledger transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountTransaction, error)

	// ListTransactionsByWorker retrieves a paginated list of ledger transactions for a worker
	// using token-based pagination, newest first.
	ListTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.AccountTransaction, *string, error)

	// SourcePosted reports whether a source currently has effective (non-reversed)
	// ledger rows. Reversal rows cancel the forward rows they reference.
	SourcePosted(ctx context.Context, tx pgx.Tx, sourceType domain.SourceType, sourceID string) (bool, error)

	// FindPostedBySource retrieves the effective (non-reversed) ledger rows for a source.
	FindPostedBySource(ctx context.Context, tx pgx.Tx, sourceType domain.SourceType, sourceID string) ([]domain.AccountTransaction, error)
}

// LedgerPoster defines write operations against the account ledger. All writes
// happen inside an enclosing transaction so that balance updates and row
// inserts are atomic.
type LedgerPoster interface {
	// PostInTx appends ledger rows for a single worker within a transaction.
	// The worker's account balance is updated row by row and each row's
	// BalanceAfter is filled in from the running balance. The rows with
	// final balances are returned.
	PostInTx(ctx context.Context, tx pgx.Tx, workerID string, entries []domain.AccountTransaction) ([]domain.AccountTransaction, error)
}

// BalanceAuditWriter defines write operations for the leave and debt audit trails.
type BalanceAuditWriter interface {
	// ApplyLeaveDeltaInTx adjusts a worker's leave balance and records a
	// leave transaction within a transaction.
	ApplyLeaveDeltaInTx(ctx context.Context, tx pgx.Tx, workerID string, deltaDays decimal.Decimal, paymentID *string, description string, actor string) (*domain.LeaveTransaction, error)

	// ApplyDebtDeltaInTx adjusts a worker's debt balance and records a
	// debt transaction within a transaction.
	ApplyDebtDeltaInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, sourceType *domain.SourceType, sourceID *string, description string, actor string) (*domain.DebtTransaction, error)
}

// BalanceAuditReader defines read operations for the leave and debt audit trails.
type BalanceAuditReader interface {
	// ListLeaveTransactionsByWorker retrieves a paginated list of leave transactions for a worker.
	ListLeaveTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.LeaveTransaction, *string, error)

	// ListDebtTransactionsByWorker retrieves a paginated list of debt transactions for a worker.
	ListDebtTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.DebtTransaction, *string, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerPoster
	BalanceAuditWriter
	BalanceAuditReader
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
