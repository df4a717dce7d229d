package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/opspay/payroll_backend/internal/core/ports/services"
	"github.com/opspay/payroll_backend/internal/middleware"
	"github.com/opspay/payroll_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	if cfg.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
		if err != nil {
			slog.Warn("Invalid rate limit format, rate limiting disabled", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		} else {
			v1.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
		}
	}

	RegisterWorkerRoutes(v1, services.Worker, services.Ledger, services.TaxPeriod)
	RegisterPayrollRunRoutes(v1, services.PayrollRun)
	RegisterDebtRunRoutes(v1, services.DebtRun)
	RegisterManualPaymentRoutes(v1, services.ManualPayment)
	RegisterTaxPeriodRoutes(v1, services.TaxPeriod)
	RegisterScheduleRoutes(v1, services.Schedule)
}
