package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/core/services"
)

type TaxPeriodServiceTestSuite struct {
	suite.Suite
	mockTaxRepo   *MockTaxPeriodRepository
	mockAuditRepo *MockAuditRepository
	service       portssvc.TaxPeriodSvcFacade
	actor         string
}

func (suite *TaxPeriodServiceTestSuite) SetupTest() {
	suite.mockTaxRepo = new(MockTaxPeriodRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewTaxPeriodService(suite.mockTaxRepo, suite.mockAuditRepo)
	suite.actor = uuid.NewString()

	suite.mockAuditRepo.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditLog")).Return(nil).Maybe()
}

func (suite *TaxPeriodServiceTestSuite) record(status domain.FilingStatus) *domain.TaxPeriodRecord {
	return &domain.TaxPeriodRecord{
		RecordID:     uuid.NewString(),
		WorkerID:     uuid.NewString(),
		Year:         2025,
		Month:        3,
		TotalGross:   decimal.NewFromInt(90000),
		TotalTDS:     decimal.NewFromInt(9000),
		TotalNet:     decimal.NewFromInt(81000),
		PaymentCount: 1,
		FilingStatus: status,
	}
}

func (suite *TaxPeriodServiceTestSuite) TestAdvanceFilingStatus_OneStepForward() {
	ctx := context.Background()
	existing := suite.record(domain.FilingPending)

	suite.mockTaxRepo.On("FindRecord", ctx, 2025, time.March, existing.WorkerID).Return(existing, nil).Once()
	suite.mockTaxRepo.On("UpdateFilingStatus", ctx, 2025, time.March, existing.WorkerID, domain.FilingWaiting, suite.actor, mock.AnythingOfType("time.Time")).Return(nil).Once()

	record, err := suite.service.AdvanceFilingStatus(ctx, 2025, time.March, existing.WorkerID, domain.FilingWaiting, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.FilingWaiting, record.FilingStatus)
	suite.Equal(suite.actor, record.LastUpdatedBy)
	suite.mockTaxRepo.AssertExpectations(suite.T())
}

func (suite *TaxPeriodServiceTestSuite) TestAdvanceFilingStatus_SkipRejected() {
	ctx := context.Background()
	existing := suite.record(domain.FilingPending)

	suite.mockTaxRepo.On("FindRecord", ctx, 2025, time.March, existing.WorkerID).Return(existing, nil).Once()

	record, err := suite.service.AdvanceFilingStatus(ctx, 2025, time.March, existing.WorkerID, domain.FilingFiled, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFilingStatusNotForward)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(record)
	suite.mockTaxRepo.AssertNotCalled(suite.T(), "UpdateFilingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TaxPeriodServiceTestSuite) TestAdvanceFilingStatus_BackwardRejected() {
	ctx := context.Background()
	existing := suite.record(domain.FilingFiled)

	suite.mockTaxRepo.On("FindRecord", ctx, 2025, time.March, existing.WorkerID).Return(existing, nil).Once()

	record, err := suite.service.AdvanceFilingStatus(ctx, 2025, time.March, existing.WorkerID, domain.FilingPending, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFilingStatusNotForward)
	suite.Nil(record)
}

func (suite *TaxPeriodServiceTestSuite) TestGetRecord_NotFoundPropagates() {
	ctx := context.Background()
	workerID := uuid.NewString()

	suite.mockTaxRepo.On("FindRecord", ctx, 2025, time.April, workerID).Return(nil, apperrors.NewNotFoundError("tax record not found")).Once()

	record, err := suite.service.GetRecord(ctx, 2025, time.April, workerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(record)
}

func TestTaxPeriodService(t *testing.T) {
	suite.Run(t, new(TaxPeriodServiceTestSuite))
}
