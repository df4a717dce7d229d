package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/middleware"
)

// debtRunHandler handles HTTP requests for debt settlement runs.
type debtRunHandler struct {
	debtRunService portssvc.DebtRunSvcFacade
}

func newDebtRunHandler(ds portssvc.DebtRunSvcFacade) *debtRunHandler {
	return &debtRunHandler{debtRunService: ds}
}

// RegisterDebtRunRoutes registers routes related to debt runs.
func RegisterDebtRunRoutes(rg *gin.RouterGroup, ds portssvc.DebtRunSvcFacade) {
	h := newDebtRunHandler(ds)

	runs := rg.Group("/debt-runs")
	{
		runs.POST("", h.createDebtRun)
		runs.GET("", h.listDebtRuns)
		runs.GET("/:debtRunID", h.getDebtRun)
		runs.PATCH("/:debtRunID/status", h.updateDebtRunStatus)
	}
}

func (h *debtRunHandler) createDebtRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebtRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDebtRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	run, err := h.debtRunService.CreateDebtRun(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create debt run")
		return
	}

	logger.Info("Debt run created", slog.String("debt_run_id", run.DebtRunID))
	c.JSON(http.StatusCreated, dto.ToDebtRunResponse(run))
}

func (h *debtRunHandler) getDebtRun(c *gin.Context) {
	debtRunID := c.Param("debtRunID")

	run, err := h.debtRunService.GetDebtRunByID(c.Request.Context(), debtRunID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve debt run")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtRunResponse(run))
}

func (h *debtRunHandler) listDebtRuns(c *gin.Context) {
	var params dto.ListDebtRunsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.debtRunService.ListDebtRuns(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list debt runs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *debtRunHandler) updateDebtRunStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtRunID := c.Param("debtRunID")

	var req dto.UpdateDebtRunStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDebtRunStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logger.Info("Received request to transition debt run",
		slog.String("debt_run_id", debtRunID),
		slog.String("target_status", string(req.Status)),
	)

	run, err := h.debtRunService.TransitionDebtRun(c.Request.Context(), debtRunID, req.Status, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to transition debt run")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtRunResponse(run))
}
