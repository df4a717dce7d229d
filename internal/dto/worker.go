package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opspay/payroll_backend/internal/core/domain"
)

// CreateWorkerRequest defines the data needed to register a new worker.
type CreateWorkerRequest struct {
	Name          string          `json:"name" binding:"required"`
	Email         string          `json:"email" binding:"required,email"`
	JoinDate      time.Time       `json:"joinDate" binding:"required"`
	CycleGrossPay decimal.Decimal `json:"cycleGrossPay" binding:"required"`
	TDSRatePct    decimal.Decimal `json:"tdsRatePct"`
	BankName      string          `json:"bankName" binding:"required"`
	AccountNumber string          `json:"accountNumber" binding:"required"`
	IFSC          string          `json:"ifsc" binding:"required"`
	PAN           string          `json:"pan" binding:"required"`
}

// UpdateWorkerRequest defines the data allowed for updating a worker.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateWorkerRequest struct {
	Name            *string                  `json:"name"`
	Email           *string                  `json:"email" binding:"omitempty,email"`
	Status          *domain.EmploymentStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE TERMINATED"`
	TerminationDate *time.Time               `json:"terminationDate"`
	CycleGrossPay   *decimal.Decimal         `json:"cycleGrossPay"`
	TDSRatePct      *decimal.Decimal         `json:"tdsRatePct"`
	BankName        *string                  `json:"bankName"`
	AccountNumber   *string                  `json:"accountNumber"`
	IFSC            *string                  `json:"ifsc"`
	PAN             *string                  `json:"pan"`
}

// WorkerResponse defines the data returned for a worker.
type WorkerResponse struct {
	WorkerID        string                  `json:"workerID"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Status          domain.EmploymentStatus `json:"status"`
	JoinDate        time.Time               `json:"joinDate"`
	TerminationDate *time.Time              `json:"terminationDate,omitempty"`
	CycleGrossPay   decimal.Decimal         `json:"cycleGrossPay"`
	TDSRatePct      decimal.Decimal         `json:"tdsRatePct"`
	LeaveBalance    decimal.Decimal         `json:"leaveBalance"`
	DebtBalance     decimal.Decimal         `json:"debtBalance"`
	AccountBalance  decimal.Decimal         `json:"accountBalance"`
	BankName        string                  `json:"bankName"`
	AccountNumber   string                  `json:"accountNumber"`
	IFSC            string                  `json:"ifsc"`
	PAN             string                  `json:"pan"`
	CreatedAt       time.Time               `json:"createdAt"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
}

// ListWorkersParams defines query parameters for listing workers.
type ListWorkersParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListWorkersResponse wraps the paginated list of workers.
type ListWorkersResponse struct {
	Workers   []WorkerResponse `json:"workers"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToWorkerResponse converts a domain.Worker to WorkerResponse DTO
func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID:        w.WorkerID,
		Name:            w.Name,
		Email:           w.Email,
		Status:          w.Status,
		JoinDate:        w.JoinDate,
		TerminationDate: w.TerminationDate,
		CycleGrossPay:   w.CycleGrossPay,
		TDSRatePct:      w.TDSRatePct,
		LeaveBalance:    w.LeaveBalance,
		DebtBalance:     w.DebtBalance,
		AccountBalance:  w.AccountBalance,
		BankName:        w.Bank.BankName,
		AccountNumber:   w.Bank.AccountNumber,
		IFSC:            w.Bank.IFSC,
		PAN:             w.Bank.PAN,
		CreatedAt:       w.CreatedAt,
		LastUpdatedAt:   w.LastUpdatedAt,
	}
}

// ToListWorkersResponse converts a slice of domain.Worker to ListWorkersResponse DTO
func ToListWorkersResponse(workers []domain.Worker, nextToken *string) ListWorkersResponse {
	responses := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		responses[i] = ToWorkerResponse(&w)
	}
	return ListWorkersResponse{Workers: responses, NextToken: nextToken}
}
