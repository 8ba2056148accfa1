package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// promotionHandler handles HTTP requests related to promotions.
type promotionHandler struct {
	promotionService portssvc.PromotionSvcFacade
}

func newPromotionHandler(ps portssvc.PromotionSvcFacade) *promotionHandler {
	return &promotionHandler{promotionService: ps}
}

// registerPromotionRoutes registers routes related to promotions.
func registerPromotionRoutes(rg *gin.RouterGroup, promotionService portssvc.PromotionSvcFacade) {
	h := newPromotionHandler(promotionService)

	promotions := rg.Group("/promotions")
	{
		promotions.POST("", h.createPromotion)
		promotions.GET("/active", h.listActivePromotions)
		promotions.POST("/:promotionID/reserve", h.reserveUsage)
	}
}

func (h *promotionHandler) createPromotion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePromotion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creator := actorID(c)
	logger = logger.With(slog.String("creator", creator), slog.String("code", req.Code))
	logger.Info("Received request to create promotion")

	promo, err := h.promotionService.CreatePromotion(c.Request.Context(), req, creator)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create promotion")
		return
	}

	logger.Info("Promotion created successfully", slog.String("promotion_id", promo.PromotionID))
	c.JSON(http.StatusCreated, dto.ToPromotionResponse(promo))
}

func (h *promotionHandler) listActivePromotions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	promos, err := h.promotionService.ListActivePromotions(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list promotions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotions": dto.ToListPromotionResponse(promos)})
}

// reserveUsage claims one use of the promotion at sale completion. A 409
// answer means the usage limit is exhausted and the till must re-quote
// without this promotion.
func (h *promotionHandler) reserveUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	promotionID := c.Param("promotionID")
	logger = logger.With(slog.String("promotion_id", promotionID))

	reserved, err := h.promotionService.ReservePromotionUsage(c.Request.Context(), promotionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reserve promotion usage")
		return
	}
	if !reserved {
		c.JSON(http.StatusConflict, gin.H{"reserved": false, "error": "Promotion usage limit reached"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reserved": true})
}
