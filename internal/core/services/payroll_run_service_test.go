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
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/core/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/platform/config"
)

type PayrollRunServiceTestSuite struct {
	suite.Suite
	mockRunRepo      *MockPayrollRunRepository
	mockWorkerRepo   *MockWorkerRepository
	mockScheduleRepo *MockScheduleRepository
	mockAuditRepo    *MockAuditRepository
	service          portssvc.PayrollRunSvcFacade
	worker           domain.Worker
	actor            string
}

func (suite *PayrollRunServiceTestSuite) SetupTest() {
	suite.mockRunRepo = new(MockPayrollRunRepository)
	suite.mockWorkerRepo = new(MockWorkerRepository)
	suite.mockScheduleRepo = new(MockScheduleRepository)
	suite.mockAuditRepo = new(MockAuditRepository)

	cfg := &config.Config{
		PayCycleDays:       14,
		ExplicitRunPosting: config.PostAtCreation,
	}
	suite.service = services.NewPayrollRunService(cfg, suite.mockRunRepo, suite.mockWorkerRepo, suite.mockScheduleRepo, suite.mockAuditRepo)

	suite.actor = uuid.NewString()
	suite.worker = domain.Worker{
		WorkerID:       uuid.NewString(),
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Status:         domain.Active,
		JoinDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CycleGrossPay:  decimal.NewFromInt(70000),
		TDSRatePct:     decimal.NewFromInt(10),
		LeaveBalance:   decimal.NewFromInt(5),
		DebtBalance:    decimal.NewFromInt(10000),
		AccountBalance: decimal.NewFromInt(-2000),
	}

	// Audit failures never fail the operation, so tests just accept the call.
	suite.mockAuditRepo.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditLog")).Return(nil).Maybe()
}

func (suite *PayrollRunServiceTestSuite) TestCreateRun_PostsEffectsAtCreation() {
	ctx := context.Background()
	req := dto.CreatePayrollRunRequest{
		RunDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Workers: []dto.RunWorkerInput{
			{WorkerID: suite.worker.WorkerID, LeaveDays: decimal.NewFromInt(3), DebtAmount: decimal.NewFromInt(5000)},
		},
	}

	suite.mockWorkerRepo.On("FindWorkersByIDs", ctx, []string{suite.worker.WorkerID}).
		Return(map[string]domain.Worker{suite.worker.WorkerID: suite.worker}, nil).Once()

	var savedRun domain.PayrollRun
	var savedEffects []portsrepo.PaymentEffects
	suite.mockRunRepo.On("SaveRun", ctx, mock.AnythingOfType("domain.PayrollRun"), mock.AnythingOfType("[]repositories.PaymentEffects"), suite.actor).
		Run(func(args mock.Arguments) {
			savedRun = args.Get(1).(domain.PayrollRun)
			savedEffects = args.Get(2).([]portsrepo.PaymentEffects)
		}).Return(nil).Once()

	run, err := suite.service.CreateRun(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(run)
	suite.Equal(domain.RunPending, run.Status)
	suite.False(run.Generated)
	suite.Equal(1, run.PaymentCount)

	// 70000 gross + 15000 cashout + 5000 debt = 90000 taxable, 9000 tds,
	// 2000 recovered from the negative balance, 79000 net.
	payment := run.Payments[0]
	suite.True(payment.TaxableAmount.Equal(decimal.NewFromInt(90000)), "taxable was %s", payment.TaxableAmount)
	suite.True(payment.TDS.Equal(decimal.NewFromInt(9000)), "tds was %s", payment.TDS)
	suite.True(payment.Recovered.Equal(decimal.NewFromInt(2000)), "recovered was %s", payment.Recovered)
	suite.True(payment.NetAmount.Equal(decimal.NewFromInt(79000)), "net was %s", payment.NetAmount)

	// Default period start is one full cycle before the run date.
	suite.Equal(req.RunDate.AddDate(0, 0, -13), savedRun.PeriodStart)

	// Posting-at-creation: one effect per payment, recovery row then salary row.
	suite.Require().Len(savedEffects, 1)
	eff := savedEffects[0]
	suite.Equal(domain.SourcePayment, eff.SourceType)
	suite.Equal(payment.PaymentID, eff.SourceID)
	suite.Require().Len(eff.LedgerEntries, 2)
	suite.Equal(domain.CategoryAdvanceRecovery, eff.LedgerEntries[0].Category)
	suite.Equal(domain.CategorySalary, eff.LedgerEntries[1].Category)
	suite.True(eff.LeaveDelta.Equal(decimal.NewFromInt(-3)))
	suite.True(eff.DebtDelta.Equal(decimal.NewFromInt(-5000)))

	suite.mockWorkerRepo.AssertExpectations(suite.T())
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestCreateRun_DuplicateWorkerRejected() {
	ctx := context.Background()
	req := dto.CreatePayrollRunRequest{
		RunDate: time.Now(),
		Workers: []dto.RunWorkerInput{
			{WorkerID: suite.worker.WorkerID},
			{WorkerID: suite.worker.WorkerID},
		},
	}

	run, err := suite.service.CreateRun(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateWorkerInRun)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(run)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "SaveRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollRunServiceTestSuite) TestCreateRun_InsufficientLeaveRejected() {
	ctx := context.Background()
	req := dto.CreatePayrollRunRequest{
		RunDate: time.Now(),
		Workers: []dto.RunWorkerInput{
			{WorkerID: suite.worker.WorkerID, LeaveDays: decimal.NewFromInt(10)},
		},
	}

	suite.mockWorkerRepo.On("FindWorkersByIDs", ctx, []string{suite.worker.WorkerID}).
		Return(map[string]domain.Worker{suite.worker.WorkerID: suite.worker}, nil).Once()

	run, err := suite.service.CreateRun(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientLeave)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(run)
}

func (suite *PayrollRunServiceTestSuite) TestGeneratePendingRuns_OneRunPerOverduePeriod() {
	ctx := context.Background()
	scheduleID := uuid.NewString()
	schedule := &domain.PaySchedule{
		ScheduleID:  scheduleID,
		CycleDays:   14,
		NextRunDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	today := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	suite.mockScheduleRepo.On("FindScheduleByID", ctx, scheduleID).Return(schedule, nil).Once()
	suite.mockWorkerRepo.On("ListEligibleWorkers", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.Worker{suite.worker}, nil).Twice()

	var savedRuns []domain.PayrollRun
	suite.mockRunRepo.On("SaveRun", ctx, mock.AnythingOfType("domain.PayrollRun"), mock.Anything, suite.actor).
		Run(func(args mock.Arguments) {
			savedRuns = append(savedRuns, args.Get(1).(domain.PayrollRun))
			suite.Nil(args.Get(2)) // generated runs never post at creation
		}).Return(nil).Twice()

	created, err := suite.service.GeneratePendingRuns(ctx, scheduleID, today, suite.actor)

	suite.Require().NoError(err)
	suite.Require().Len(created, 2) // Mar 1 and Mar 15 are both overdue
	suite.Equal(schedule.NextRunDate, created[0].RunDate)
	suite.Equal(schedule.NextRunDate.AddDate(0, 0, 14), created[1].RunDate)
	for _, run := range savedRuns {
		suite.Equal(domain.RunPending, run.Status)
		suite.True(run.Generated)
		suite.Equal(1, run.PaymentCount)
		suite.True(run.Payments[0].LeaveDays.IsZero())
		suite.True(run.Payments[0].DebtCleared.IsZero())
	}

	suite.mockScheduleRepo.AssertExpectations(suite.T())
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestTransitionRun_ProcessedStampsTimestamps() {
	ctx := context.Background()
	runID := uuid.NewString()
	run := &domain.PayrollRun{RunID: runID, Status: domain.RunPending}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()
	suite.mockRunRepo.On("UpdateRunStatus", ctx, mock.AnythingOfType("domain.PayrollRun"), suite.actor, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			updated := args.Get(1).(domain.PayrollRun)
			suite.Equal(domain.RunProcessed, updated.Status)
			suite.NotNil(updated.ProcessedAt)
			suite.NotNil(updated.ProcessedBy)
		}).Return(nil).Once()
	processed := &domain.PayrollRun{RunID: runID, Status: domain.RunProcessed}
	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(processed, nil).Once()

	updated, err := suite.service.TransitionRun(ctx, runID, domain.RunProcessed, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RunProcessed, updated.Status)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestTransitionRun_SettleBuildsEffectsAndEvents() {
	ctx := context.Background()
	runID := uuid.NewString()
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		RunID:         runID,
		WorkerID:      suite.worker.WorkerID,
		Status:        domain.PaymentPending,
		LeaveDays:     decimal.NewFromInt(2),
		Gross:         decimal.NewFromInt(70000),
		TaxableAmount: decimal.NewFromInt(80000),
		TDS:           decimal.NewFromInt(8000),
		NetAmount:     decimal.NewFromInt(72000),
	}
	run := &domain.PayrollRun{
		RunID:    runID,
		RunDate:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:   domain.RunProcessed,
		Payments: []domain.Payment{payment},
	}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()

	var params portsrepo.SettleRunParams
	suite.mockRunRepo.On("SettleRun", ctx, mock.AnythingOfType("repositories.SettleRunParams")).
		Run(func(args mock.Arguments) {
			params = args.Get(1).(portsrepo.SettleRunParams)
		}).Return(&portsrepo.SettleResult{Posted: []string{payment.PaymentID}}, nil).Once()

	paidAt := time.Now().UTC()
	paid := &domain.PayrollRun{RunID: runID, Status: domain.RunPaid, PaidAt: &paidAt, Payments: run.Payments}
	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(paid, nil).Once()

	updated, err := suite.service.TransitionRun(ctx, runID, domain.RunPaid, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RunPaid, updated.Status)

	suite.Require().Len(params.Effects, 1)
	suite.Equal(payment.PaymentID, params.Effects[0].SourceID)
	suite.True(params.Effects[0].TaxGross.Equal(payment.TaxableAmount))
	suite.Require().Len(params.Events, 1)
	suite.Equal(suite.worker.WorkerID, params.Events[0].Key)
	// Tax aggregation is keyed by the month settlement happens in.
	suite.Equal(time.Now().UTC().Year(), params.TaxYear)
	suite.Nil(params.Schedule) // explicit runs never advance a schedule

	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestTransitionRun_SameStatusIsNoOp() {
	ctx := context.Background()
	runID := uuid.NewString()
	run := &domain.PayrollRun{RunID: runID, Status: domain.RunPaid}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()

	updated, err := suite.service.TransitionRun(ctx, runID, domain.RunPaid, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(run, updated)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "SettleRun", mock.Anything, mock.Anything)
}

func (suite *PayrollRunServiceTestSuite) TestTransitionRun_InvalidTransitionRejected() {
	ctx := context.Background()
	runID := uuid.NewString()
	run := &domain.PayrollRun{RunID: runID, Status: domain.RunCancelled}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()

	updated, err := suite.service.TransitionRun(ctx, runID, domain.RunPending, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransition)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
}

func (suite *PayrollRunServiceTestSuite) TestTransitionRun_RevertTargetsSettlementMonth() {
	ctx := context.Background()
	runID := uuid.NewString()
	paidAt := time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)
	run := &domain.PayrollRun{
		RunID:  runID,
		Status: domain.RunPaid,
		PaidAt: &paidAt,
		Payments: []domain.Payment{{
			PaymentID: uuid.NewString(),
			RunID:     runID,
			WorkerID:  suite.worker.WorkerID,
			NetAmount: decimal.NewFromInt(63000),
		}},
	}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()

	var params portsrepo.RevertRunParams
	suite.mockRunRepo.On("RevertPaidRun", ctx, mock.AnythingOfType("repositories.RevertRunParams")).
		Run(func(args mock.Arguments) {
			params = args.Get(1).(portsrepo.RevertRunParams)
		}).Return(nil).Once()

	pending := &domain.PayrollRun{RunID: runID, Status: domain.RunPending}
	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(pending, nil).Once()

	updated, err := suite.service.TransitionRun(ctx, runID, domain.RunPending, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.RunPending, updated.Status)
	// Reversal decrements the tax record the settlement incremented, even
	// when the revert happens in a later month.
	suite.Equal(2025, params.TaxYear)
	suite.Equal(time.February, params.TaxMonth)
	suite.Require().Len(params.Effects, 1)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestEditPayment_ReversesAndRepostsCreationEffects() {
	ctx := context.Background()
	runID := uuid.NewString()
	paymentID := uuid.NewString()
	old := domain.Payment{
		PaymentID:   paymentID,
		RunID:       runID,
		WorkerID:    suite.worker.WorkerID,
		Status:      domain.PaymentPending,
		LeaveDays:   decimal.NewFromInt(3),
		DebtCleared: decimal.NewFromInt(5000),
		Recovered:   decimal.NewFromInt(2000),
		NetAmount:   decimal.NewFromInt(79000),
	}
	run := &domain.PayrollRun{
		RunID:    runID,
		Status:   domain.RunPending,
		Payments: []domain.Payment{old},
	}

	// Live balances already carry the old payment's creation posting.
	liveWorker := suite.worker
	liveWorker.LeaveBalance = decimal.NewFromInt(2)
	liveWorker.DebtBalance = decimal.NewFromInt(5000)
	liveWorker.AccountBalance = decimal.NewFromInt(79000)

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()
	suite.mockWorkerRepo.On("FindWorkerByID", ctx, suite.worker.WorkerID).Return(&liveWorker, nil).Once()

	var reverse, post *portsrepo.PaymentEffects
	suite.mockRunRepo.On("UpdatePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.PayrollRun"), mock.Anything, mock.Anything, suite.actor, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			reverse = args.Get(3).(*portsrepo.PaymentEffects)
			post = args.Get(4).(*portsrepo.PaymentEffects)
		}).Return(nil).Once()

	updated, err := suite.service.EditPayment(ctx, runID, paymentID, dto.EditPaymentRequest{
		LeaveDays:  decimal.NewFromInt(1),
		DebtAmount: decimal.Zero,
	}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(paymentID, updated.PaymentID)
	// 70000 + 5000 cashout = 75000 taxable, 7500 tds, 2000 recovered.
	suite.True(updated.TaxableAmount.Equal(decimal.NewFromInt(75000)), "taxable was %s", updated.TaxableAmount)
	suite.True(updated.Recovered.Equal(decimal.NewFromInt(2000)), "recovered was %s", updated.Recovered)

	suite.Require().NotNil(reverse)
	suite.Require().NotNil(post)
	suite.Equal(paymentID, reverse.SourceID)
	suite.Equal(paymentID, post.SourceID)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestEditPayment_PaidRunRejected() {
	ctx := context.Background()
	runID := uuid.NewString()
	run := &domain.PayrollRun{RunID: runID, Status: domain.RunPaid}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()

	updated, err := suite.service.EditPayment(ctx, runID, uuid.NewString(), dto.EditPaymentRequest{}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRunNotEditable)
	suite.Nil(updated)
}

func (suite *PayrollRunServiceTestSuite) TestRerunRun_CancelsAndLinksReplacement() {
	ctx := context.Background()
	runID := uuid.NewString()
	run := &domain.PayrollRun{
		RunID:       runID,
		RunDate:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		PeriodStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.RunPending,
		Payments: []domain.Payment{{
			PaymentID: uuid.NewString(),
			RunID:     runID,
			WorkerID:  suite.worker.WorkerID,
			LeaveDays: decimal.NewFromInt(1),
		}},
	}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()
	suite.mockWorkerRepo.On("FindWorkersByIDs", ctx, []string{suite.worker.WorkerID}).
		Return(map[string]domain.Worker{suite.worker.WorkerID: suite.worker}, nil).Once()

	// The cancel, the replacement insert and the superseded link all travel
	// in one repository call.
	var replaced portsrepo.ReplaceRunParams
	suite.mockRunRepo.On("ReplaceRun", ctx, mock.AnythingOfType("repositories.ReplaceRunParams")).
		Run(func(args mock.Arguments) {
			replaced = args.Get(1).(portsrepo.ReplaceRunParams)
		}).Return(nil).Once()

	newRun, err := suite.service.RerunRun(ctx, runID, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(newRun)
	suite.NotEqual(runID, newRun.RunID)
	suite.Equal(runID, replaced.OldRunID)
	suite.Equal(newRun.RunID, replaced.Replacement.RunID)
	suite.Len(replaced.ReverseEffects, len(run.Payments))
	suite.Equal(run.RunDate, newRun.RunDate)
	suite.Equal(run.PeriodStart, newRun.PeriodStart)
	suite.Equal(domain.RunPending, newRun.Status)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "SaveRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PayrollRunServiceTestSuite) TestRerunRun_PaidRunRejected() {
	ctx := context.Background()
	runID := uuid.NewString()
	run := &domain.PayrollRun{RunID: runID, Status: domain.RunPaid}

	suite.mockRunRepo.On("FindRunByID", ctx, runID).Return(run, nil).Once()

	newRun, err := suite.service.RerunRun(ctx, runID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRunNotRerunnable)
	suite.Nil(newRun)
}

func TestPayrollRunService(t *testing.T) {
	suite.Run(t, new(PayrollRunServiceTestSuite))
}
