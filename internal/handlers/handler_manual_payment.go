package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/dto"
	"github.com/opspay/payroll_backend/internal/middleware"
)

// manualPaymentHandler handles HTTP requests for one-off payments.
type manualPaymentHandler struct {
	manualService portssvc.ManualPaymentSvcFacade
}

func newManualPaymentHandler(ms portssvc.ManualPaymentSvcFacade) *manualPaymentHandler {
	return &manualPaymentHandler{manualService: ms}
}

// RegisterManualPaymentRoutes registers routes related to manual payments.
func RegisterManualPaymentRoutes(rg *gin.RouterGroup, ms portssvc.ManualPaymentSvcFacade) {
	h := newManualPaymentHandler(ms)

	payments := rg.Group("/manual-payments")
	{
		payments.POST("", h.createManualPayment)
		payments.GET("/:manualPaymentID", h.getManualPayment)
	}

	rg.GET("/workers/:workerID/manual-payments", h.listManualPayments)
}

func (h *manualPaymentHandler) createManualPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateManualPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	payment, err := h.manualService.CreateManualPayment(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create manual payment")
		return
	}

	logger.Info("Manual payment recorded",
		slog.String("manual_payment_id", payment.ManualPaymentID),
		slog.String("category", string(payment.Category)),
	)
	c.JSON(http.StatusCreated, dto.ToManualPaymentResponse(payment))
}

func (h *manualPaymentHandler) getManualPayment(c *gin.Context) {
	paymentID := c.Param("manualPaymentID")

	payment, err := h.manualService.GetManualPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve manual payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToManualPaymentResponse(payment))
}

func (h *manualPaymentHandler) listManualPayments(c *gin.Context) {
	workerID := c.Param("workerID")

	var params dto.ListManualPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.manualService.ListManualPayments(c.Request.Context(), workerID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list manual payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}
