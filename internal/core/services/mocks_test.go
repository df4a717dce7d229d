package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/opspay/payroll_backend/internal/core/domain"
	portsrepo "github.com/opspay/payroll_backend/internal/core/ports/repositories"
)

// --- Mock WorkerRepository ---
type MockWorkerRepository struct {
	mock.Mock
}

var _ portsrepo.WorkerRepositoryFacade = (*MockWorkerRepository)(nil)

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindWorkersByIDs(ctx context.Context, workerIDs []string) (map[string]domain.Worker, error) {
	args := m.Called(ctx, workerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Worker), token, args.Error(2)
}

func (m *MockWorkerRepository) ListEligibleWorkers(ctx context.Context, periodStart time.Time, runDate time.Time) ([]domain.Worker, error) {
	args := m.Called(ctx, periodStart, runDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) DeactivateWorker(ctx context.Context, workerID string, actor string, now time.Time) error {
	args := m.Called(ctx, workerID, actor, now)
	return args.Error(0)
}

func (m *MockWorkerRepository) FindWorkersByIDsForUpdate(ctx context.Context, tx pgx.Tx, workerIDs []string) (map[string]domain.Worker, error) {
	args := m.Called(ctx, tx, workerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, workerID, delta, actor, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWorkerRepository) UpdateLeaveBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, deltaDays decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, workerID, deltaDays, actor, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWorkerRepository) UpdateDebtBalanceInTx(ctx context.Context, tx pgx.Tx, workerID string, delta decimal.Decimal, actor string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, workerID, delta, actor, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock PayrollRunRepository ---
type MockPayrollRunRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRunRepositoryFacade = (*MockPayrollRunRepository)(nil)

func (m *MockPayrollRunRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunRepository) ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.PayrollRun, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.PayrollRun), token, args.Error(2)
}

func (m *MockPayrollRunRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPayrollRunRepository) ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Payment), token, args.Error(2)
}

func (m *MockPayrollRunRepository) SaveRun(ctx context.Context, run domain.PayrollRun, effects []portsrepo.PaymentEffects, actor string) error {
	args := m.Called(ctx, run, effects, actor)
	return args.Error(0)
}

func (m *MockPayrollRunRepository) UpdateRunStatus(ctx context.Context, run domain.PayrollRun, actor string, now time.Time) error {
	args := m.Called(ctx, run, actor, now)
	return args.Error(0)
}

func (m *MockPayrollRunRepository) UpdatePayment(ctx context.Context, payment domain.Payment, run domain.PayrollRun, reverse *portsrepo.PaymentEffects, post *portsrepo.PaymentEffects, actor string, now time.Time) error {
	args := m.Called(ctx, payment, run, reverse, post, actor, now)
	return args.Error(0)
}

func (m *MockPayrollRunRepository) CancelRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockPayrollRunRepository) ReplaceRun(ctx context.Context, params portsrepo.ReplaceRunParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockPayrollRunRepository) SettleRun(ctx context.Context, params portsrepo.SettleRunParams) (*portsrepo.SettleResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.SettleResult), args.Error(1)
}

func (m *MockPayrollRunRepository) RevertPaidRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// --- Mock DebtRunRepository ---
type MockDebtRunRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRunRepositoryFacade = (*MockDebtRunRepository)(nil)

func (m *MockDebtRunRepository) FindDebtRunByID(ctx context.Context, runID string) (*domain.DebtRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtRun), args.Error(1)
}

func (m *MockDebtRunRepository) ListDebtRuns(ctx context.Context, limit int, nextToken *string) ([]domain.DebtRun, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.DebtRun), token, args.Error(2)
}

func (m *MockDebtRunRepository) FindDebtPaymentByID(ctx context.Context, paymentID string) (*domain.DebtPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtPayment), args.Error(1)
}

func (m *MockDebtRunRepository) SaveDebtRun(ctx context.Context, run domain.DebtRun, effects []portsrepo.PaymentEffects, actor string) error {
	args := m.Called(ctx, run, effects, actor)
	return args.Error(0)
}

func (m *MockDebtRunRepository) UpdateDebtRunStatus(ctx context.Context, run domain.DebtRun, actor string, now time.Time) error {
	args := m.Called(ctx, run, actor, now)
	return args.Error(0)
}

func (m *MockDebtRunRepository) CancelDebtRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockDebtRunRepository) SettleDebtRun(ctx context.Context, params portsrepo.SettleRunParams) (*portsrepo.SettleResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.SettleResult), args.Error(1)
}

func (m *MockDebtRunRepository) RevertPaidDebtRun(ctx context.Context, params portsrepo.RevertRunParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// --- Mock ScheduleRepository ---
type MockScheduleRepository struct {
	mock.Mock
}

var _ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)

func (m *MockScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaySchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaySchedule), args.Error(1)
}

func (m *MockScheduleRepository) ListSchedules(ctx context.Context) ([]domain.PaySchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaySchedule), args.Error(1)
}

func (m *MockScheduleRepository) SaveSchedule(ctx context.Context, schedule domain.PaySchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) UpdateSchedule(ctx context.Context, schedule domain.PaySchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) AdvanceInTx(ctx context.Context, tx pgx.Tx, scheduleID string, runDate time.Time, actor string, now time.Time) error {
	args := m.Called(ctx, tx, scheduleID, runDate, actor, now)
	return args.Error(0)
}

// --- Mock TaxPeriodRepository ---
type MockTaxPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.TaxPeriodRepositoryFacade = (*MockTaxPeriodRepository)(nil)

func (m *MockTaxPeriodRepository) FindRecord(ctx context.Context, year int, month time.Month, workerID string) (*domain.TaxPeriodRecord, error) {
	args := m.Called(ctx, year, month, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxPeriodRecord), args.Error(1)
}

func (m *MockTaxPeriodRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.TaxPeriodRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxPeriodRecord), args.Error(1)
}

func (m *MockTaxPeriodRepository) ListRecordsByPeriod(ctx context.Context, year int, month time.Month) ([]domain.TaxPeriodRecord, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxPeriodRecord), args.Error(1)
}

func (m *MockTaxPeriodRepository) ListRecordsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.TaxPeriodRecord, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.TaxPeriodRecord), token, args.Error(2)
}

func (m *MockTaxPeriodRepository) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, year int, month time.Month, workerID string, gross, tds, net decimal.Decimal, paymentCountDelta int, actor string, now time.Time) error {
	args := m.Called(ctx, tx, year, month, workerID, gross, tds, net, paymentCountDelta, actor, now)
	return args.Error(0)
}

func (m *MockTaxPeriodRepository) UpdateFilingStatus(ctx context.Context, year int, month time.Month, workerID string, status domain.FilingStatus, actor string, now time.Time) error {
	args := m.Called(ctx, year, month, workerID, status, actor, now)
	return args.Error(0)
}

// --- Mock ManualPaymentRepository ---
type MockManualPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.ManualPaymentRepositoryFacade = (*MockManualPaymentRepository)(nil)

func (m *MockManualPaymentRepository) FindManualPaymentByID(ctx context.Context, paymentID string) (*domain.ManualPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManualPayment), args.Error(1)
}

func (m *MockManualPaymentRepository) ListManualPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.ManualPayment, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.ManualPayment), token, args.Error(2)
}

func (m *MockManualPaymentRepository) SaveManualPayment(ctx context.Context, payment domain.ManualPayment, effects portsrepo.PaymentEffects, actor string) (*domain.ManualPayment, error) {
	args := m.Called(ctx, payment, effects, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManualPayment), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Record(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) RecordInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	args := m.Called(ctx, entityType, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.AuditLog), token, args.Error(2)
}
