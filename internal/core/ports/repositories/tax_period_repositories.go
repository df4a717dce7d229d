package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// TaxPeriodReader defines read operations for tax period data
type TaxPeriodReader interface {
	// FindRecord retrieves the tax period record for a worker and month, if any.
	FindRecord(ctx context.Context, year int, month time.Month, workerID string) (*domain.TaxPeriodRecord, error)

	// FindRecordByID retrieves a tax period record by its primary key.
	FindRecordByID(ctx context.Context, recordID string) (*domain.TaxPeriodRecord, error)

	// ListRecordsByPeriod retrieves all records of a month, ordered by worker.
	ListRecordsByPeriod(ctx context.Context, year int, month time.Month) ([]domain.TaxPeriodRecord, error)

	// ListRecordsByWorker retrieves a worker's records across months, newest first.
	ListRecordsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.TaxPeriodRecord, *string, error)
}

// TaxPeriodWriter defines write operations for tax period data
type TaxPeriodWriter interface {
	// ApplyDeltaInTx folds a settlement (or its reversal) into the worker's
	// record for the month within a transaction. A record is created on first
	// positive delta and deleted when its payment count reaches zero.
	ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, year int, month time.Month, workerID string, gross, tds, net decimal.Decimal, paymentCountDelta int, actor string, now time.Time) error

	// UpdateFilingStatus advances the filing status of a worker's record.
	UpdateFilingStatus(ctx context.Context, year int, month time.Month, workerID string, status domain.FilingStatus, actor string, now time.Time) error
}

// TaxPeriodRepositoryFacade combines all tax-period repository interfaces
// This is a facade for clients that need access to all operations
type TaxPeriodRepositoryFacade interface {
	TaxPeriodReader
	TaxPeriodWriter
}

// TaxPeriodRepositoryWithTx extends TaxPeriodRepositoryFacade with transaction capabilities
type TaxPeriodRepositoryWithTx interface {
	TaxPeriodRepositoryFacade
	TransactionManager
}
