package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/middleware"
)

// payrollRunHandler handles HTTP requests for payroll runs and their payments.
type payrollRunHandler struct {
	runService portssvc.PayrollRunSvcFacade
}

func newPayrollRunHandler(rs portssvc.PayrollRunSvcFacade) *payrollRunHandler {
	return &payrollRunHandler{runService: rs}
}

// RegisterPayrollRunRoutes registers routes related to payroll runs.
func RegisterPayrollRunRoutes(rg *gin.RouterGroup, rs portssvc.PayrollRunSvcFacade) {
	h := newPayrollRunHandler(rs)

	runs := rg.Group("/payroll-runs")
	{
		runs.POST("", h.createRun)
		runs.POST("/generate", h.generateRuns)
		runs.GET("", h.listRuns)
		runs.GET("/:runID", h.getRun)
		runs.PATCH("/:runID/status", h.updateRunStatus)
		runs.POST("/:runID/rerun", h.rerunRun)
	}

	payments := rg.Group("/payments")
	{
		payments.PATCH("/:paymentID", h.editPayment)
	}
}

func (h *payrollRunHandler) createRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logger.Info("Received request to create payroll run", slog.Int("worker_count", len(req.Workers)))

	run, err := h.runService.CreateRun(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create payroll run")
		return
	}

	logger.Info("Payroll run created", slog.String("run_id", run.RunID))
	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(run))
}

func (h *payrollRunHandler) generateRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateRunsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateRuns", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	runs, err := h.runService.GeneratePendingRuns(c.Request.Context(), req.ScheduleID, asOf, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to generate payroll runs")
		return
	}

	logger.Info("Generated payroll runs", slog.String("schedule_id", req.ScheduleID), slog.Int("count", len(runs)))
	responses := make([]dto.PayrollRunResponse, len(runs))
	for i := range runs {
		responses[i] = dto.ToPayrollRunResponse(&runs[i])
	}
	c.JSON(http.StatusCreated, dto.GeneratedRunsResponse{Generated: responses})
}

func (h *payrollRunHandler) getRun(c *gin.Context) {
	runID := c.Param("runID")

	run, err := h.runService.GetRunByID(c.Request.Context(), runID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payroll run")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

func (h *payrollRunHandler) listRuns(c *gin.Context) {
	var params dto.ListRunsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.runService.ListRuns(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list payroll runs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *payrollRunHandler) updateRunStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	var req dto.UpdateRunStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRunStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logger.Info("Received request to transition payroll run",
		slog.String("run_id", runID),
		slog.String("target_status", string(req.Status)),
	)

	run, err := h.runService.TransitionRun(c.Request.Context(), runID, req.Status, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to transition payroll run")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

func (h *payrollRunHandler) rerunRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	runID := c.Param("runID")

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	replacement, err := h.runService.RerunRun(c.Request.Context(), runID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to rerun payroll run")
		return
	}

	logger.Info("Payroll run superseded",
		slog.String("run_id", runID),
		slog.String("replacement_run_id", replacement.RunID),
	)
	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(replacement))
}

func (h *payrollRunHandler) editPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	var req dto.EditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	payment, err := h.runService.EditPayment(c.Request.Context(), req.RunID, paymentID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to edit payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
