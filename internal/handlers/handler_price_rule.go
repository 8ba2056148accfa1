package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// priceRuleHandler handles HTTP requests related to scheduled price rules.
type priceRuleHandler struct {
	scheduledPriceService portssvc.ScheduledPriceSvcFacade
}

func newPriceRuleHandler(sps portssvc.ScheduledPriceSvcFacade) *priceRuleHandler {
	return &priceRuleHandler{scheduledPriceService: sps}
}

// registerPriceRuleRoutes registers routes related to scheduled price rules.
func registerPriceRuleRoutes(rg *gin.RouterGroup, scheduledPriceService portssvc.ScheduledPriceSvcFacade) {
	h := newPriceRuleHandler(scheduledPriceService)

	rules := rg.Group("/price-rules")
	{
		rules.POST("", h.createRule)
		rules.GET("/product/:productID", h.listRulesForProduct)
	}
}

func (h *priceRuleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePriceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePriceRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creator := actorID(c)
	logger = logger.With(slog.String("creator", creator), slog.String("product_id", req.ProductID))
	logger.Info("Received request to create price rule", slog.String("price_type", req.PriceType))

	rule, err := h.scheduledPriceService.CreateRule(c.Request.Context(), req, creator)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create price rule")
		return
	}

	logger.Info("Price rule created successfully", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, dto.ToPriceRuleResponse(rule))
}

func (h *priceRuleHandler) listRulesForProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	rules, err := h.scheduledPriceService.ListRulesForProduct(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list price rules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": dto.ToListPriceRuleResponse(rules)})
}
