package services

import (
	"context"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/dto"
)

// ManualPaymentReaderSvc defines read operations for manual payments
type ManualPaymentReaderSvc interface {
	// GetManualPaymentByID retrieves a specific manual payment.
	GetManualPaymentByID(ctx context.Context, paymentID string) (*domain.ManualPayment, error)

	// ListManualPayments retrieves a worker's manual payments, newest first.
	ListManualPayments(ctx context.Context, workerID string, params dto.ListManualPaymentsParams) (*dto.ListManualPaymentsResponse, error)
}

// ManualPaymentWriterSvc defines write operations for manual payments
type ManualPaymentWriterSvc interface {
	// CreateManualPayment records a one-off payment and posts its single
	// ledger row atomically.
	CreateManualPayment(ctx context.Context, req dto.CreateManualPaymentRequest, actor string) (*domain.ManualPayment, error)
}

// ManualPaymentSvcFacade combines all manual-payment service interfaces
type ManualPaymentSvcFacade interface {
	ManualPaymentReaderSvc
	ManualPaymentWriterSvc
}
