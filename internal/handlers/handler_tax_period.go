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

// taxPeriodHandler handles HTTP requests for monthly tax period records.
type taxPeriodHandler struct {
	taxService portssvc.TaxPeriodSvcFacade
}

func newTaxPeriodHandler(ts portssvc.TaxPeriodSvcFacade) *taxPeriodHandler {
	return &taxPeriodHandler{taxService: ts}
}

// RegisterTaxPeriodRoutes registers routes related to tax periods.
func RegisterTaxPeriodRoutes(rg *gin.RouterGroup, ts portssvc.TaxPeriodSvcFacade) {
	h := newTaxPeriodHandler(ts)

	periods := rg.Group("/tax-periods")
	{
		periods.GET("", h.listRecordsByPeriod)
		periods.PATCH("/:recordID/status", h.advanceFilingStatus)
	}
}

// listTaxRecordsByPeriodParams binds the ?year=&month= query.
type listTaxRecordsByPeriodParams struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

func (h *taxPeriodHandler) listRecordsByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params listTaxRecordsByPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTaxRecords", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.taxService.ListRecordsByPeriod(c.Request.Context(), params.Year, time.Month(params.Month))
	if err != nil {
		respondServiceError(c, err, "Failed to list tax records")
		return
	}

	responses := make([]dto.TaxPeriodRecordResponse, len(records))
	for i := range records {
		responses[i] = dto.ToTaxPeriodRecordResponse(&records[i])
	}
	c.JSON(http.StatusOK, dto.ListTaxRecordsResponse{Records: responses})
}

func (h *taxPeriodHandler) advanceFilingStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	var req dto.UpdateFilingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdvanceFilingStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	record, err := h.taxService.AdvanceFilingStatusByRecordID(c.Request.Context(), recordID, req.Status, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to advance filing status")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxPeriodRecordResponse(record))
}
