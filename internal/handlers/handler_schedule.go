package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/middleware"
)

// scheduleHandler handles HTTP requests for pay schedules.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
}

func newScheduleHandler(ss portssvc.ScheduleSvcFacade) *scheduleHandler {
	return &scheduleHandler{scheduleService: ss}
}

// RegisterScheduleRoutes registers routes related to pay schedules.
func RegisterScheduleRoutes(rg *gin.RouterGroup, ss portssvc.ScheduleSvcFacade) {
	h := newScheduleHandler(ss)

	schedules := rg.Group("/schedules")
	{
		schedules.POST("", h.createSchedule)
		schedules.GET("", h.listSchedules)
		schedules.GET("/:scheduleID", h.getSchedule)
		schedules.PUT("/:scheduleID", h.updateSchedule)
	}
}

func (h *scheduleHandler) createSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create schedule")
		return
	}

	logger.Info("Schedule created", slog.String("schedule_id", schedule.ScheduleID))
	c.JSON(http.StatusCreated, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) getSchedule(c *gin.Context) {
	scheduleID := c.Param("scheduleID")

	schedule, err := h.scheduleService.GetScheduleByID(c.Request.Context(), scheduleID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) listSchedules(c *gin.Context) {
	schedules, err := h.scheduleService.ListSchedules(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list schedules")
		return
	}

	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = dto.ToScheduleResponse(&schedules[i])
	}
	c.JSON(http.StatusOK, gin.H{"schedules": responses})
}

func (h *scheduleHandler) updateSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scheduleID := c.Param("scheduleID")

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(c.Request.Context(), scheduleID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}
