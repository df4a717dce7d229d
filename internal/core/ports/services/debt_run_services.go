package services

import (
	"context"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/dto"
)

// DebtRunReaderSvc defines read operations for debt run data
type DebtRunReaderSvc interface {
	// GetDebtRunByID retrieves a specific debt run with its payments.
	GetDebtRunByID(ctx context.Context, runID string) (*domain.DebtRun, error)

	// ListDebtRuns retrieves a paginated list of debt runs, newest first.
	ListDebtRuns(ctx context.Context, params dto.ListDebtRunsParams) (*dto.ListDebtRunsResponse, error)
}

// DebtRunWriterSvc defines write operations for debt run data
type DebtRunWriterSvc interface {
	// CreateDebtRun creates a PENDING debt run. Per the posting policy the
	// workers' debt balances are decremented at creation by default.
	CreateDebtRun(ctx context.Context, req dto.CreateDebtRunRequest, actor string) (*domain.DebtRun, error)

	// TransitionDebtRun moves a debt run to the target status, settling on
	// PAID and reversing on a PAID->PENDING revert.
	TransitionDebtRun(ctx context.Context, runID string, target domain.DebtRunStatus, actor string) (*domain.DebtRun, error)
}

// DebtRunSvcFacade combines all debt-run service interfaces
type DebtRunSvcFacade interface {
	DebtRunReaderSvc
	DebtRunWriterSvc
}
