package services

import (
	"context"
	"time"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/dto"
)

// PayrollRunReaderSvc defines read operations for payroll run data
type PayrollRunReaderSvc interface {
	// GetRunByID retrieves a specific payroll run with its payments.
	GetRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// ListRuns retrieves a paginated list of payroll runs, newest first.
	ListRuns(ctx context.Context, params dto.ListRunsParams) (*dto.ListRunsResponse, error)
}

// PayrollRunWriterSvc defines write operations for payroll run data
type PayrollRunWriterSvc interface {
	// CreateRun creates an explicit PENDING run from the given worker inputs.
	// Per the posting policy, creation may already post ledger effects.
	CreateRun(ctx context.Context, req dto.CreatePayrollRunRequest, actor string) (*domain.PayrollRun, error)

	// GeneratePendingRuns scans the schedule and creates one PENDING run per
	// overdue period, including every eligible worker. Returns the created runs.
	GeneratePendingRuns(ctx context.Context, scheduleID string, today time.Time, actor string) ([]domain.PayrollRun, error)

	// TransitionRun moves a run to the target status, settling on PAID and
	// reversing on a PAID->PENDING revert.
	TransitionRun(ctx context.Context, runID string, target domain.RunStatus, actor string) (*domain.PayrollRun, error)

	// EditPayment re-derives a single payment of a DRAFT or PENDING run.
	EditPayment(ctx context.Context, runID string, paymentID string, req dto.EditPaymentRequest, actor string) (*domain.Payment, error)

	// RerunRun cancels a settleable run and creates a fresh replacement run
	// from current worker data, linking the old run to its successor.
	RerunRun(ctx context.Context, runID string, actor string) (*domain.PayrollRun, error)
}

// PayrollRunSvcFacade combines all payroll-run service interfaces
// This is a facade for clients that need access to all operations
type PayrollRunSvcFacade interface {
	PayrollRunReaderSvc
	PayrollRunWriterSvc
}
