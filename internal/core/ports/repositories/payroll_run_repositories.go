package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/messaging/kafka"
)

// PaymentEffects captures everything that settling a single payment must
// apply atomically: ledger rows, balance trail deltas and tax aggregation.
type PaymentEffects struct {
	SourceType    domain.SourceType
	SourceID      string
	WorkerID      string
	LedgerEntries []domain.AccountTransaction
	LeaveDelta    decimal.Decimal
	DebtDelta     decimal.Decimal
	TaxGross      decimal.Decimal
	TaxTDS        decimal.Decimal
	TaxNet        decimal.Decimal
}

// SettleRunParams carries everything needed to settle a run in one
// serializable transaction.
type SettleRunParams struct {
	RunID    string
	Effects  []PaymentEffects
	TaxYear  int
	TaxMonth time.Month
	// Schedule, when set, is advanced monotonically past the run date.
	Schedule *domain.PaySchedule
	Events   []kafka.OutboxEvent
	Actor    string
	Now      time.Time
}

// SettleResult reports which sources were posted and which were skipped
// because their ledger rows already existed.
type SettleResult struct {
	Posted  []string
	Skipped []string
}

// RevertRunParams carries everything needed to revert a paid run back to
// pending, reversing all of its posted effects.
type RevertRunParams struct {
	RunID    string
	Effects  []PaymentEffects
	TaxYear  int
	TaxMonth time.Month
	Actor    string
	Now      time.Time
}

// ReplaceRunParams carries everything needed to cancel a run and persist its
// replacement in one transaction.
type ReplaceRunParams struct {
	OldRunID string
	// ReverseEffects undo anything the old run posted at creation.
	ReverseEffects []PaymentEffects
	Replacement    domain.PayrollRun
	// PostEffects are applied for the replacement when it posts at creation.
	PostEffects []PaymentEffects
	Actor       string
	Now         time.Time
}

// PayrollRunReader defines read operations for payroll run data
type PayrollRunReader interface {
	// FindRunByID retrieves a specific payroll run by its unique identifier,
	// including its payments.
	FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// ListRuns retrieves a paginated list of payroll runs using token-based pagination,
	// newest first. It returns the runs, a token for the next page, and an error.
	ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.PayrollRun, *string, error)

	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByWorker retrieves a paginated list of payments for a worker.
	ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PayrollRunWriter defines write operations for payroll run data
type PayrollRunWriter interface {
	// SaveRun persists a run and its payments. Effects, when non-empty, are
	// posted in the same transaction (posting at creation).
	SaveRun(ctx context.Context, run domain.PayrollRun, effects []PaymentEffects, actor string) error

	// UpdateRunStatus updates a run's status and status timestamps without
	// touching balances.
	UpdateRunStatus(ctx context.Context, run domain.PayrollRun, actor string, now time.Time) error

	// UpdatePayment replaces a single payment's breakdown and rewrites the
	// run totals in the same transaction. When reverse/post are set, the
	// payment's previously posted effects are reversed and the new ones
	// posted atomically (posting-at-creation runs stay consistent on edit).
	UpdatePayment(ctx context.Context, payment domain.Payment, run domain.PayrollRun, reverse *PaymentEffects, post *PaymentEffects, actor string, now time.Time) error

	// CancelRun marks the run cancelled, reversing any effects that were
	// posted at creation.
	CancelRun(ctx context.Context, params RevertRunParams) error

	// ReplaceRun atomically cancels the old run, persists the replacement
	// with its payments, and links the old run to its successor. Either all
	// of it commits or none of it does.
	ReplaceRun(ctx context.Context, params ReplaceRunParams) error

	// SettleRun atomically marks the run paid and applies every payment's
	// effects, skipping sources that already have effective ledger rows.
	SettleRun(ctx context.Context, params SettleRunParams) (*SettleResult, error)

	// RevertPaidRun atomically moves a paid run back to pending and reverses
	// every effect the settlement applied.
	RevertPaidRun(ctx context.Context, params RevertRunParams) error
}

// PayrollRunRepositoryFacade combines all payroll-run repository interfaces
// This is a facade for clients that need access to all operations
type PayrollRunRepositoryFacade interface {
	PayrollRunReader
	PayrollRunWriter
}

// PayrollRunRepositoryWithTx extends PayrollRunRepositoryFacade with transaction capabilities
type PayrollRunRepositoryWithTx interface {
	PayrollRunRepositoryFacade
	TransactionManager
}
