package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("/:currency", h.listRates)
		exchangeRates.PUT("/:rateID/deactivate", h.deactivateRate)
	}
}

func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creator := actorID(c)
	logger = logger.With(slog.String("creator", creator), slog.String("currency", req.Currency))
	logger.Info("Received request to create exchange rate", slog.Any("rate", req.RateToXOF))

	createdRate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creator)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("rate_id", createdRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := domain.ParseCurrency(c.Param("currency"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rates, err := h.exchangeRateService.ListRates(c.Request.Context(), currency)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": dto.ToListExchangeRateResponse(rates)})
}

// deactivateRateRequest optionally carries the expiry date to stamp on the
// retired rate.
type deactivateRateRequest struct {
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

func (h *exchangeRateHandler) deactivateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	var req deactivateRateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for DeactivateRate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	updater := actorID(c)
	logger = logger.With(slog.String("rate_id", rateID), slog.String("updater", updater))

	if err := h.exchangeRateService.DeactivateRate(c.Request.Context(), rateID, req.ExpiryDate, updater); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate exchange rate")
		return
	}

	logger.Info("Exchange rate deactivated successfully")
	c.Status(http.StatusNoContent)
}
