package handlers

import (
	ports "github.com/sahelpos/pricing_app/internal/core/ports"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	clock ports.Clock,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, clock)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	clock ports.Clock,
) {
	v1 := r.Group("/api/v1")

	registerPricingRoutes(v1, services, clock)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerPriceRuleRoutes(v1, services.ScheduledPrice)
	registerPromotionRoutes(v1, services.Promotion)
	registerBundleRoutes(v1, services.Bundle, clock)
}
