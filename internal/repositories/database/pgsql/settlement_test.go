package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
)

// --- Mock LedgerRepositoryFacade ---
type MockLedgerFacade struct {
	mock.Mock
}

func (m *MockLedgerFacade) FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransaction), args.Error(1)
}

func (m *MockLedgerFacade) ListTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.AccountTransaction, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AccountTransaction), args.Get(1).(*string), args.Error(2)
}

func (m *MockLedgerFacade) SourcePosted(ctx context.Context, tx pgx.Tx, sourceType domain.SourceType, sourceID string) (bool, error) {
	args := m.Called(ctx, tx, sourceType, sourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerFacade) FindPostedBySource(ctx context.Context, tx pgx.Tx, sourceType domain.SourceType, sourceID string) ([]domain.AccountTransaction, error) {
	args := m.Called(ctx, tx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransaction), args.Error(1)
}

func (m *MockLedgerFacade) PostInTx(ctx context.Context, tx pgx.Tx, workerID string, entries []domain.AccountTransaction) ([]domain.AccountTransaction, error) {
	args := m.Called(ctx, tx, workerID, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransaction), args.Error(1)
}

func (m *MockLedgerFacade) ApplyLeaveDeltaInTx(ctx context.Context, tx pgx.Tx, workerID string, deltaDays decimal.Decimal, paymentID *string, description string, actor string) (*domain.LeaveTransaction, error) {
	args := m.Called(ctx, tx, workerID, deltaDays, paymentID, description, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveTransaction), args.Error(1)
}

func (m *MockLedgerFacade) ApplyDebtDeltaInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, sourceType *domain.SourceType, sourceID *string, description string, actor string) (*domain.DebtTransaction, error) {
	args := m.Called(ctx, tx, workerID, delta, sourceType, sourceID, description, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtTransaction), args.Error(1)
}

func (m *MockLedgerFacade) ListLeaveTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.LeaveTransaction, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.LeaveTransaction), args.Get(1).(*string), args.Error(2)
}

func (m *MockLedgerFacade) ListDebtTransactionsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.DebtTransaction, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.DebtTransaction), args.Get(1).(*string), args.Error(2)
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerFacade)(nil)

// --- Test Suite ---
type SettlementTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerFacade
	effects    portsrepo.PaymentEffects
	actor      string
}

func (suite *SettlementTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerFacade)
	suite.actor = uuid.NewString()

	sourceType := domain.SourcePayment
	sourceID := uuid.NewString()
	workerID := uuid.NewString()
	suite.effects = portsrepo.PaymentEffects{
		SourceType: sourceType,
		SourceID:   sourceID,
		WorkerID:   workerID,
		LedgerEntries: []domain.AccountTransaction{
			{
				TransactionID: uuid.NewString(),
				WorkerID:      workerID,
				EntryType:     domain.Debit,
				Category:      domain.CategoryAdvanceRecovery,
				Amount:        decimal.NewFromInt(2000),
				Description:   "Advance recovery",
				SourceType:    &sourceType,
				SourceID:      &sourceID,
			},
			{
				TransactionID: uuid.NewString(),
				WorkerID:      workerID,
				EntryType:     domain.Credit,
				Category:      domain.CategorySalary,
				Amount:        decimal.NewFromInt(64500),
				Description:   "Salary",
				SourceType:    &sourceType,
				SourceID:      &sourceID,
			},
		},
		LeaveDelta: decimal.NewFromInt(-3),
		DebtDelta:  decimal.NewFromInt(-5000),
		TaxGross:   decimal.NewFromInt(75000),
		TaxTDS:     decimal.NewFromInt(7500),
		TaxNet:     decimal.NewFromInt(67500),
	}
}

func (suite *SettlementTestSuite) TestApplyEffect_PostsRowsAndDeltas() {
	ctx := context.Background()
	eff := suite.effects

	suite.mockLedger.On("SourcePosted", ctx, nil, eff.SourceType, eff.SourceID).Return(false, nil).Once()
	suite.mockLedger.On("PostInTx", ctx, nil, eff.WorkerID, eff.LedgerEntries).Return(eff.LedgerEntries, nil).Once()
	suite.mockLedger.On("ApplyLeaveDeltaInTx", ctx, nil, eff.WorkerID, eff.LeaveDelta, &eff.SourceID, "Leave cashout", suite.actor).
		Return(&domain.LeaveTransaction{}, nil).Once()
	suite.mockLedger.On("ApplyDebtDeltaInTx", ctx, nil, eff.WorkerID, eff.DebtDelta, &eff.SourceType, &eff.SourceID, "Debt settled", suite.actor).
		Return(&domain.DebtTransaction{}, nil).Once()

	posted, err := applyEffectInTx(ctx, nil, suite.mockLedger, eff, suite.actor)

	suite.Require().NoError(err)
	suite.True(posted)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SettlementTestSuite) TestApplyEffect_AlreadyPostedSourceSkipped() {
	ctx := context.Background()
	eff := suite.effects

	// A second settlement of the same source must not write anything.
	suite.mockLedger.On("SourcePosted", ctx, nil, eff.SourceType, eff.SourceID).Return(true, nil).Once()

	posted, err := applyEffectInTx(ctx, nil, suite.mockLedger, eff, suite.actor)

	suite.Require().NoError(err)
	suite.False(posted)
	suite.mockLedger.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyLeaveDeltaInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "ApplyDebtDeltaInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementTestSuite) TestReverseEffect_SymmetricReversal() {
	ctx := context.Background()
	eff := suite.effects
	now := time.Now().UTC()

	suite.mockLedger.On("FindPostedBySource", ctx, nil, eff.SourceType, eff.SourceID).
		Return(eff.LedgerEntries, nil).Once()

	var reversals []domain.AccountTransaction
	suite.mockLedger.On("PostInTx", ctx, nil, eff.WorkerID, mock.AnythingOfType("[]domain.AccountTransaction")).
		Run(func(args mock.Arguments) {
			reversals = args.Get(3).([]domain.AccountTransaction)
		}).Return([]domain.AccountTransaction{}, nil).Once()
	suite.mockLedger.On("ApplyLeaveDeltaInTx", ctx, nil, eff.WorkerID, eff.LeaveDelta.Neg(), &eff.SourceID, "Leave cashout reverted", suite.actor).
		Return(&domain.LeaveTransaction{}, nil).Once()
	suite.mockLedger.On("ApplyDebtDeltaInTx", ctx, nil, eff.WorkerID, eff.DebtDelta.Neg(), &eff.SourceType, &eff.SourceID, "Debt settlement reverted", suite.actor).
		Return(&domain.DebtTransaction{}, nil).Once()

	reversed, err := reverseEffectInTx(ctx, nil, suite.mockLedger, eff, suite.actor, now)

	suite.Require().NoError(err)
	suite.True(reversed)

	// LIFO order with opposite entry types, each linked to the row it undoes.
	suite.Require().Len(reversals, 2)
	suite.Equal(domain.Debit, reversals[0].EntryType)
	suite.Equal(domain.CategorySalary, reversals[0].Category)
	suite.True(reversals[0].Amount.Equal(decimal.NewFromInt(64500)))
	suite.Require().NotNil(reversals[0].ReversesTransactionID)
	suite.Equal(eff.LedgerEntries[1].TransactionID, *reversals[0].ReversesTransactionID)

	suite.Equal(domain.Credit, reversals[1].EntryType)
	suite.Equal(domain.CategoryAdvanceRecovery, reversals[1].Category)
	suite.True(reversals[1].Amount.Equal(decimal.NewFromInt(2000)))
	suite.Require().NotNil(reversals[1].ReversesTransactionID)
	suite.Equal(eff.LedgerEntries[0].TransactionID, *reversals[1].ReversesTransactionID)

	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *SettlementTestSuite) TestReverseEffect_NothingPostedIsNoop() {
	ctx := context.Background()
	eff := suite.effects

	suite.mockLedger.On("FindPostedBySource", ctx, nil, eff.SourceType, eff.SourceID).
		Return([]domain.AccountTransaction{}, nil).Once()

	reversed, err := reverseEffectInTx(ctx, nil, suite.mockLedger, eff, suite.actor, time.Now().UTC())

	suite.Require().NoError(err)
	suite.False(reversed)
	suite.mockLedger.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestSettlement(t *testing.T) {
	suite.Run(t, new(SettlementTestSuite))
}
