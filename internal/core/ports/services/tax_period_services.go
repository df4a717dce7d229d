package services

import (
	"context"
	"time"

	"github.com/opspay/payroll_backend/internal/core/domain"
	"github.com/opspay/payroll_backend/internal/dto"
)

// TaxPeriodReaderSvc defines read operations for tax period data
type TaxPeriodReaderSvc interface {
	// GetRecord retrieves the tax record for a worker and month.
	GetRecord(ctx context.Context, year int, month time.Month, workerID string) (*domain.TaxPeriodRecord, error)

	// ListRecordsByPeriod retrieves all tax records of a month.
	ListRecordsByPeriod(ctx context.Context, year int, month time.Month) ([]domain.TaxPeriodRecord, error)

	// ListRecordsByWorker retrieves a worker's tax records across months.
	ListRecordsByWorker(ctx context.Context, workerID string, params dto.ListTaxRecordsParams) (*dto.ListTaxRecordsResponse, error)
}

// TaxPeriodWriterSvc defines write operations for tax period data
type TaxPeriodWriterSvc interface {
	// AdvanceFilingStatus moves a record's filing status one step forward.
	AdvanceFilingStatus(ctx context.Context, year int, month time.Month, workerID string, target domain.FilingStatus, actor string) (*domain.TaxPeriodRecord, error)

	// AdvanceFilingStatusByRecordID resolves the record by its ID and then
	// advances its filing status one step forward.
	AdvanceFilingStatusByRecordID(ctx context.Context, recordID string, target domain.FilingStatus, actor string) (*domain.TaxPeriodRecord, error)
}

// TaxPeriodSvcFacade combines all tax-period service interfaces
type TaxPeriodSvcFacade interface {
	TaxPeriodReaderSvc
	TaxPeriodWriterSvc
}
