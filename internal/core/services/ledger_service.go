package services

import (
	"context"
	"fmt"

	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
)

// ledgerService provides read access to the worker ledger and the
// leave/debt audit trails.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	workerRepo portsrepo.WorkerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, workerRepo portsrepo.WorkerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		workerRepo: workerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetWorkerBalances retrieves the three live balances of a worker.
func (s *ledgerService) GetWorkerBalances(ctx context.Context, workerID string) (*dto.WorkerBalanceResponse, error) {
	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find worker %s: %w", workerID, err)
	}
	return &dto.WorkerBalanceResponse{
		WorkerID:       worker.WorkerID,
		AccountBalance: worker.AccountBalance,
		LeaveBalance:   worker.LeaveBalance,
		DebtBalance:    worker.DebtBalance,
	}, nil
}

// ListTransactions retrieves a page of a worker's ledger rows, newest first.
func (s *ledgerService) ListTransactions(ctx context.Context, workerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.ledgerRepo.ListTransactionsByWorker(ctx, workerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for worker %s: %w", workerID, err)
	}
	resp := dto.ToListTransactionsResponse(txns, nextToken)
	return &resp, nil
}

// ListLeaveTransactions retrieves a page of a worker's leave audit trail.
func (s *ledgerService) ListLeaveTransactions(ctx context.Context, workerID string, params dto.ListTransactionsParams) (*dto.ListLeaveTransactionsResponse, error) {
	txns, nextToken, err := s.ledgerRepo.ListLeaveTransactionsByWorker(ctx, workerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave transactions for worker %s: %w", workerID, err)
	}
	resp := dto.ToListLeaveTransactionsResponse(txns, nextToken)
	return &resp, nil
}

// ListDebtTransactions retrieves a page of a worker's debt audit trail.
func (s *ledgerService) ListDebtTransactions(ctx context.Context, workerID string, params dto.ListTransactionsParams) (*dto.ListDebtTransactionsResponse, error) {
	txns, nextToken, err := s.ledgerRepo.ListDebtTransactionsByWorker(ctx, workerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt transactions for worker %s: %w", workerID, err)
	}
	resp := dto.ToListDebtTransactionsResponse(txns, nextToken)
	return &resp, nil
}
