package repositories

import (
	"context"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// ManualPaymentReader defines read operations for manual payment data
type ManualPaymentReader interface {
	// FindManualPaymentByID retrieves a specific manual payment by its unique identifier.
	FindManualPaymentByID(ctx context.Context, paymentID string) (*domain.ManualPayment, error)

	// ListManualPaymentsByWorker retrieves a paginated list of manual payments for a worker.
	ListManualPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.ManualPayment, *string, error)
}

// ManualPaymentWriter defines write operations for manual payment data
type ManualPaymentWriter interface {
	// SaveManualPayment persists a manual payment and applies its effects
	// (ledger rows, debt trail) in a single transaction.
	SaveManualPayment(ctx context.Context, payment domain.ManualPayment, effects PaymentEffects, actor string) (*domain.ManualPayment, error)
}

// ManualPaymentRepositoryFacade combines all manual-payment repository interfaces
// This is a facade for clients that need access to all operations
type ManualPaymentRepositoryFacade interface {
	ManualPaymentReader
	ManualPaymentWriter
}

// ManualPaymentRepositoryWithTx extends ManualPaymentRepositoryFacade with transaction capabilities
type ManualPaymentRepositoryWithTx interface {
	ManualPaymentRepositoryFacade
	TransactionManager
}
