package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/core/services"
	"github.com/opspay/payroll_backend/internal/dto"
)

type ManualPaymentServiceTestSuite struct {
	suite.Suite
	mockManualRepo *MockManualPaymentRepository
	mockWorkerRepo *MockWorkerRepository
	mockAuditRepo  *MockAuditRepository
	service        portssvc.ManualPaymentSvcFacade
	worker         domain.Worker
	actor          string
}

func (suite *ManualPaymentServiceTestSuite) SetupTest() {
	suite.mockManualRepo = new(MockManualPaymentRepository)
	suite.mockWorkerRepo = new(MockWorkerRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewManualPaymentService(suite.mockManualRepo, suite.mockWorkerRepo, suite.mockAuditRepo)

	suite.actor = uuid.NewString()
	suite.worker = domain.Worker{
		WorkerID:   uuid.NewString(),
		Name:       "Meera Iyer",
		Status:     domain.Active,
		TDSRatePct: decimal.NewFromInt(10),
	}

	suite.mockAuditRepo.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditLog")).Return(nil).Maybe()
}

// expectSave stubs SaveManualPayment to echo the payment it was given and
// captures the effects for assertions.
func (suite *ManualPaymentServiceTestSuite) expectSave() *portsrepo.PaymentEffects {
	effects := &portsrepo.PaymentEffects{}
	saved := &domain.ManualPayment{}
	suite.mockManualRepo.On("SaveManualPayment", mock.Anything, mock.AnythingOfType("domain.ManualPayment"), mock.AnythingOfType("repositories.PaymentEffects"), suite.actor).
		Run(func(args mock.Arguments) {
			*saved = args.Get(1).(domain.ManualPayment)
			*effects = args.Get(2).(portsrepo.PaymentEffects)
		}).
		Return(saved, nil).Once()
	return effects
}

func (suite *ManualPaymentServiceTestSuite) TestCreateManualPayment_TaxableBonus() {
	ctx := context.Background()
	req := dto.CreateManualPaymentRequest{
		WorkerID:    suite.worker.WorkerID,
		Category:    domain.ManualBonus,
		GrossAmount: decimal.NewFromInt(5000),
		IsTaxable:   true,
		Notes:       "Quarterly bonus",
	}

	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.worker.WorkerID).Return(&suite.worker, nil).Once()
	effects := suite.expectSave()

	payment, err := suite.service.CreateManualPayment(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.Credit, payment.EntryType)
	suite.True(payment.TDS.Equal(decimal.NewFromInt(500)), "tds was %s", payment.TDS)
	suite.True(payment.NetAmount.Equal(decimal.NewFromInt(4500)), "net was %s", payment.NetAmount)

	suite.Require().Len(effects.LedgerEntries, 1)
	suite.Equal(domain.CategoryBonus, effects.LedgerEntries[0].Category)
	suite.Equal(domain.Credit, effects.LedgerEntries[0].EntryType)
	suite.True(effects.LedgerEntries[0].Amount.Equal(decimal.NewFromInt(4500)))

	suite.mockManualRepo.AssertExpectations(suite.T())
}

func (suite *ManualPaymentServiceTestSuite) TestCreateManualPayment_AdvanceDebitsUntaxed() {
	ctx := context.Background()
	req := dto.CreateManualPaymentRequest{
		WorkerID:    suite.worker.WorkerID,
		Category:    domain.ManualAdvance,
		GrossAmount: decimal.NewFromInt(3000),
	}

	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.worker.WorkerID).Return(&suite.worker, nil).Once()
	effects := suite.expectSave()

	payment, err := suite.service.CreateManualPayment(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Debit, payment.EntryType)
	suite.True(payment.TDS.IsZero())
	suite.True(payment.NetAmount.Equal(decimal.NewFromInt(3000)))
	suite.Equal(domain.CategoryAdvance, effects.LedgerEntries[0].Category)
	suite.Equal(domain.Debit, effects.LedgerEntries[0].EntryType)
}

func (suite *ManualPaymentServiceTestSuite) TestCreateManualPayment_AdjustmentHonorsExplicitDirection() {
	ctx := context.Background()
	debit := domain.Debit
	req := dto.CreateManualPaymentRequest{
		WorkerID:    suite.worker.WorkerID,
		Category:    domain.ManualAdjustment,
		GrossAmount: decimal.NewFromInt(1200),
		EntryType:   &debit,
		Notes:       "Correct double-paid reimbursement",
	}

	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.worker.WorkerID).Return(&suite.worker, nil).Once()
	effects := suite.expectSave()

	payment, err := suite.service.CreateManualPayment(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Debit, payment.EntryType)
	suite.Equal(domain.CategoryAdjustment, effects.LedgerEntries[0].Category)
	suite.Equal(domain.Debit, effects.LedgerEntries[0].EntryType)
}

func (suite *ManualPaymentServiceTestSuite) TestCreateManualPayment_ExplicitDirectionIgnoredForBonus() {
	ctx := context.Background()
	debit := domain.Debit
	req := dto.CreateManualPaymentRequest{
		WorkerID:    suite.worker.WorkerID,
		Category:    domain.ManualBonus,
		GrossAmount: decimal.NewFromInt(1000),
		EntryType:   &debit,
	}

	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.worker.WorkerID).Return(&suite.worker, nil).Once()
	suite.expectSave()

	payment, err := suite.service.CreateManualPayment(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Credit, payment.EntryType)
}

func (suite *ManualPaymentServiceTestSuite) TestCreateManualPayment_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateManualPaymentRequest{
		WorkerID:    suite.worker.WorkerID,
		Category:    domain.ManualBonus,
		GrossAmount: decimal.NewFromInt(-10),
	}

	payment, err := suite.service.CreateManualPayment(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrManualAmountNotPositive)
	suite.Nil(payment)
	suite.mockManualRepo.AssertNotCalled(suite.T(), "SaveManualPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestManualPaymentService(t *testing.T) {
	suite.Run(t, new(ManualPaymentServiceTestSuite))
}
