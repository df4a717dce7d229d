package services

import (
	"context"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/dto"
)

// WorkerReaderSvc defines read operations for worker data
type WorkerReaderSvc interface {
	// GetWorkerByID retrieves a specific worker by its ID.
	GetWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)

	// ListWorkers retrieves a paginated list of workers.
	ListWorkers(ctx context.Context, params dto.ListWorkersParams) (*dto.ListWorkersResponse, error)
}

// WorkerWriterSvc defines write operations for worker data
type WorkerWriterSvc interface {
	// CreateWorker registers a new worker.
	CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, actor string) (*domain.Worker, error)

	// UpdateWorker updates a worker's details.
	UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, actor string) (*domain.Worker, error)

	// DeactivateWorker marks a worker as inactive.
	DeactivateWorker(ctx context.Context, workerID string, actor string) error
}

// WorkerSvcFacade combines all worker-related service interfaces
// This is a facade for clients that need access to all operations
type WorkerSvcFacade interface {
	WorkerReaderSvc
	WorkerWriterSvc
}
