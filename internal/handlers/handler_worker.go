package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/middleware"
)

// workerHandler handles HTTP requests related to workers, their ledger
// history and their tax records.
type workerHandler struct {
	workerService portssvc.WorkerSvcFacade
	ledgerService portssvc.LedgerSvcFacade
	taxService    portssvc.TaxPeriodSvcFacade
}

func newWorkerHandler(ws portssvc.WorkerSvcFacade, ls portssvc.LedgerSvcFacade, ts portssvc.TaxPeriodSvcFacade) *workerHandler {
	return &workerHandler{
		workerService: ws,
		ledgerService: ls,
		taxService:    ts,
	}
}

// RegisterWorkerRoutes registers routes related to workers.
func RegisterWorkerRoutes(rg *gin.RouterGroup, ws portssvc.WorkerSvcFacade, ls portssvc.LedgerSvcFacade, ts portssvc.TaxPeriodSvcFacade) {
	h := newWorkerHandler(ws, ls, ts)

	workers := rg.Group("/workers")
	{
		workers.POST("", h.createWorker)
		workers.GET("", h.listWorkers)
		workers.GET("/:workerID", h.getWorker)
		workers.PUT("/:workerID", h.updateWorker)
		workers.DELETE("/:workerID", h.deactivateWorker)
		workers.GET("/:workerID/balances", h.getBalances)
		workers.GET("/:workerID/transactions", h.listTransactions)
		workers.GET("/:workerID/leave-transactions", h.listLeaveTransactions)
		workers.GET("/:workerID/debt-transactions", h.listDebtTransactions)
		workers.GET("/:workerID/tax-records", h.listTaxRecords)
	}
}

func (h *workerHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	worker, err := h.workerService.CreateWorker(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create worker")
		return
	}

	logger.Info("Worker created", slog.String("worker_id", worker.WorkerID))
	c.JSON(http.StatusCreated, dto.ToWorkerResponse(worker))
}

func (h *workerHandler) getWorker(c *gin.Context) {
	workerID := c.Param("workerID")

	worker, err := h.workerService.GetWorkerByID(c.Request.Context(), workerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve worker")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

func (h *workerHandler) listWorkers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListWorkersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListWorkers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.workerService.ListWorkers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list workers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *workerHandler) updateWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workerID := c.Param("workerID")

	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	worker, err := h.workerService.UpdateWorker(c.Request.Context(), workerID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update worker")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

func (h *workerHandler) deactivateWorker(c *gin.Context) {
	workerID := c.Param("workerID")

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.workerService.DeactivateWorker(c.Request.Context(), workerID, actor); err != nil {
		respondServiceError(c, err, "Failed to deactivate worker")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *workerHandler) getBalances(c *gin.Context) {
	workerID := c.Param("workerID")

	balances, err := h.ledgerService.GetWorkerBalances(c.Request.Context(), workerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve balances")
		return
	}

	c.JSON(http.StatusOK, balances)
}

func (h *workerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workerID := c.Param("workerID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), workerID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *workerHandler) listLeaveTransactions(c *gin.Context) {
	workerID := c.Param("workerID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListLeaveTransactions(c.Request.Context(), workerID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list leave transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *workerHandler) listDebtTransactions(c *gin.Context) {
	workerID := c.Param("workerID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListDebtTransactions(c.Request.Context(), workerID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list debt transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *workerHandler) listTaxRecords(c *gin.Context) {
	workerID := c.Param("workerID")

	var params dto.ListTaxRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.taxService.ListRecordsByWorker(c.Request.Context(), workerID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list tax records")
		return
	}

	c.JSON(http.StatusOK, resp)
}
