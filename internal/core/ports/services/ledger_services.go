package services

import (
	"context"

	"github.com/opspay/payroll_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over the worker ledger and the
// leave/debt audit trails.
type LedgerReaderSvc interface {
	// GetWorkerBalances retrieves a worker's current account, leave and debt balances.
	GetWorkerBalances(ctx context.Context, workerID string) (*dto.WorkerBalanceResponse, error)

	// ListTransactions retrieves a paginated ledger history for a worker, newest first.
	ListTransactions(ctx context.Context, workerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListLeaveTransactions retrieves a worker's leave audit trail.
	ListLeaveTransactions(ctx context.Context, workerID string, params dto.ListTransactionsParams) (*dto.ListLeaveTransactionsResponse, error)

	// ListDebtTransactions retrieves a worker's debt audit trail.
	ListDebtTransactions(ctx context.Context, workerID string, params dto.ListTransactionsParams) (*dto.ListDebtTransactionsResponse, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
}
