package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opspay/payroll_backend/internal/apperrors"
	"github.com/opspay/payroll_backend/internal/core/domain"
	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/core/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/handlers"
	"github.com/opspay/payroll_backend/internal/middleware"
)

// --- Mock PayrollRunService ---
type MockPayrollRunService struct {
	mock.Mock
}

func (m *MockPayrollRunService) GetRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunService) ListRuns(ctx context.Context, params dto.ListRunsParams) (*dto.ListRunsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListRunsResponse), args.Error(1)
}

func (m *MockPayrollRunService) CreateRun(ctx context.Context, req dto.CreatePayrollRunRequest, actor string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunService) GeneratePendingRuns(ctx context.Context, scheduleID string, today time.Time, actor string) ([]domain.PayrollRun, error) {
	args := m.Called(ctx, scheduleID, today, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunService) TransitionRun(ctx context.Context, runID string, target domain.RunStatus, actor string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, runID, target, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRunService) EditPayment(ctx context.Context, runID string, paymentID string, req dto.EditPaymentRequest, actor string) (*domain.Payment, error) {
	args := m.Called(ctx, runID, paymentID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPayrollRunService) RerunRun(ctx context.Context, runID string, actor string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, runID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PayrollRunSvcFacade = (*MockPayrollRunService)(nil)

// --- Test Suite ---
type PayrollRunHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockRunService *MockPayrollRunService
	actor          string
}

func (suite *PayrollRunHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())
	suite.mockRunService = new(MockPayrollRunService)
	suite.actor = uuid.NewString()

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPayrollRunRoutes(v1, suite.mockRunService)
}

func (suite *PayrollRunHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", suite.actor)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PayrollRunHandlerTestSuite) TestCreateRun_Success() {
	runID := uuid.NewString()
	workerID := uuid.NewString()
	runDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	expectedRun := &domain.PayrollRun{
		RunID:       runID,
		RunDate:     runDate,
		PeriodStart: runDate.AddDate(0, 0, -13),
		Status:      domain.RunPending,
		TotalNet:    decimal.NewFromInt(79000),
	}

	suite.mockRunService.On("CreateRun",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreatePayrollRunRequest) bool {
			return len(req.Workers) == 1 && req.Workers[0].WorkerID == workerID
		}),
		suite.actor,
	).Return(expectedRun, nil).Once()

	body := dto.CreatePayrollRunRequest{
		RunDate: runDate,
		Workers: []dto.RunWorkerInput{{WorkerID: workerID, LeaveDays: decimal.NewFromInt(3)}},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/payroll-runs", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PayrollRunResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(runID, resp.RunID)
	suite.True(resp.TotalNet.Equal(decimal.NewFromInt(79000)))
	suite.mockRunService.AssertExpectations(suite.T())
}

func (suite *PayrollRunHandlerTestSuite) TestCreateRun_MissingActorUnauthorized() {
	body := dto.CreatePayrollRunRequest{
		RunDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Workers: []dto.RunWorkerInput{{WorkerID: uuid.NewString()}},
	}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payroll-runs", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRunService.AssertNotCalled(suite.T(), "CreateRun", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollRunHandlerTestSuite) TestCreateRun_EmptyWorkersRejected() {
	w := suite.doJSON(http.MethodPost, "/api/v1/payroll-runs", gin.H{
		"runDate": "2025-03-14T00:00:00Z",
		"workers": []any{},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRunService.AssertNotCalled(suite.T(), "CreateRun", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollRunHandlerTestSuite) TestCreateRun_InsufficientLeaveBadRequest() {
	workerID := uuid.NewString()

	suite.mockRunService.On("CreateRun", mock.Anything, mock.Anything, suite.actor).
		Return(nil, fmt.Errorf("%w: worker %s has 2 days: %w", services.ErrInsufficientLeave, workerID, apperrors.ErrValidation)).Once()

	body := dto.CreatePayrollRunRequest{
		RunDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Workers: []dto.RunWorkerInput{{WorkerID: workerID, LeaveDays: decimal.NewFromInt(10)}},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/payroll-runs", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRunService.AssertExpectations(suite.T())
}

func (suite *PayrollRunHandlerTestSuite) TestUpdateRunStatus_InvalidTransitionConflict() {
	runID := uuid.NewString()

	suite.mockRunService.On("TransitionRun", mock.Anything, runID, domain.RunPaid, suite.actor).
		Return(nil, fmt.Errorf("%w: %w", services.ErrInvalidTransition, apperrors.ErrConflict)).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/payroll-runs/"+runID+"/status", dto.UpdateRunStatusRequest{Status: domain.RunPaid})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockRunService.AssertExpectations(suite.T())
}

func (suite *PayrollRunHandlerTestSuite) TestGetRun_NotFound() {
	runID := uuid.NewString()

	suite.mockRunService.On("GetRunByID", mock.Anything, runID).
		Return(nil, apperrors.NewNotFoundError("payroll run not found")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/payroll-runs/"+runID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PayrollRunHandlerTestSuite) TestEditPayment_RoutesThroughRunID() {
	runID := uuid.NewString()
	paymentID := uuid.NewString()

	expectedPayment := &domain.Payment{
		PaymentID: paymentID,
		RunID:     runID,
		NetAmount: decimal.NewFromInt(64500),
	}

	suite.mockRunService.On("EditPayment",
		mock.Anything,
		runID,
		paymentID,
		mock.MatchedBy(func(req dto.EditPaymentRequest) bool {
			return req.RunID == runID && req.LeaveDays.Equal(decimal.NewFromInt(1))
		}),
		suite.actor,
	).Return(expectedPayment, nil).Once()

	body := dto.EditPaymentRequest{RunID: runID, LeaveDays: decimal.NewFromInt(1)}
	w := suite.doJSON(http.MethodPatch, "/api/v1/payments/"+paymentID, body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(paymentID, resp.PaymentID)
	suite.mockRunService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPayrollRunHandler(t *testing.T) {
	suite.Run(t, new(PayrollRunHandlerTestSuite))
}
