package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	ports "github.com/sahelpos/pricing_app/internal/core/ports"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pricingHandler answers the till's price queries. Every endpoint is a pure
// read: nothing here mutates rule, promotion or counter state.
type pricingHandler struct {
	pricingService   portssvc.PricingSvcFacade
	bundleService    portssvc.BundleSvcFacade
	promotionService portssvc.PromotionSvcFacade
	clock            ports.Clock
}

func newPricingHandler(
	ps portssvc.PricingSvcFacade,
	bs portssvc.BundleSvcFacade,
	prs portssvc.PromotionSvcFacade,
	clock ports.Clock,
) *pricingHandler {
	return &pricingHandler{
		pricingService:   ps,
		bundleService:    bs,
		promotionService: prs,
		clock:            clock,
	}
}

// registerPricingRoutes registers the price-resolution query routes.
func registerPricingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, clock ports.Clock) {
	h := newPricingHandler(services.Pricing, services.Bundle, services.Promotion, clock)

	pricing := rg.Group("/pricing")
	{
		pricing.GET("/products/:productID", h.getProductPrice)
		pricing.GET("/bundles/:bundleID", h.getBundlePrice)
		pricing.POST("/promotions/quote", h.quotePromotionalPrice)
	}
}

// getProductPrice resolves a product's effective price. Query parameters:
// currency (default XOF), at (RFC 3339, default now) and withPromotions=true
// to fold live promotions in as for a cart line.
func (h *pricingHandler) getProductPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	currency, err := queryCurrency(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at, ok := queryInstant(c, h.clock.Now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' parameter, expected RFC 3339"})
		return
	}

	logger = logger.With(slog.String("product_id", productID), slog.String("currency", string(currency)))

	resp := dto.PriceResponse{ProductID: productID, Currency: string(currency), At: at}
	if c.Query("withPromotions") == "true" {
		price, applied, err := h.pricingService.ResolveCartLinePrice(c.Request.Context(), productID, currency, at)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to resolve product price")
			return
		}
		resp.Amount = price.Amount
		resp.AppliedPromotions = dto.ToAppliedPromotionResponses(applied)
	} else {
		price, err := h.pricingService.ResolveProductPrice(c.Request.Context(), productID, currency, at)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to resolve product price")
			return
		}
		resp.Amount = price.Amount
	}

	c.JSON(http.StatusOK, resp)
}

// getBundlePrice resolves a bundle's price along with the separate price and
// savings. An unavailable bundle is a normal answer, not an error: the
// response carries available=false and the failing check's reason.
func (h *pricingHandler) getBundlePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bundleID := c.Param("bundleID")

	currency, err := queryCurrency(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at, ok := queryInstant(c, h.clock.Now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' parameter, expected RFC 3339"})
		return
	}

	logger = logger.With(slog.String("bundle_id", bundleID), slog.String("currency", string(currency)))

	resp := dto.BundlePriceResponse{BundleID: bundleID, Currency: string(currency), At: at}

	price, err := h.pricingService.ResolveBundlePrice(c.Request.Context(), bundleID, currency, at)
	if err != nil {
		if unavailable, ok := apperrors.AsBundleUnavailable(err); ok {
			resp.Available = false
			resp.Reason = unavailable.Reason
			c.JSON(http.StatusOK, resp)
			return
		}
		respondServiceError(c, logger, err, "Failed to resolve bundle price")
		return
	}

	separate, err := h.bundleService.CalculateSeparatePrice(c.Request.Context(), bundleID, currency, at)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to calculate separate price")
		return
	}
	savings := separate.Amount.Sub(price.Amount)

	resp.Available = true
	resp.Amount = &price.Amount
	resp.SeparatePrice = &separate.Amount
	resp.Savings = &savings
	c.JSON(http.StatusOK, resp)
}

// quotePromotionalPrice applies live promotions to an arbitrary amount, for
// cart-level totals the till computes itself.
func (h *pricingHandler) quotePromotionalPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PromotionQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for promotion quote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at := h.clock.Now()
	if req.At != nil {
		at = *req.At
	}

	final, applied, err := h.promotionService.ResolvePromotionalPrice(
		c.Request.Context(), req.ProductID, req.CategoryID, domain.NewMoney(req.Amount, currency), at,
	)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to quote promotional price")
		return
	}

	c.JSON(http.StatusOK, dto.PromotionQuoteResponse{
		OriginalAmount:    req.Amount,
		FinalAmount:       final.Amount,
		Currency:          string(currency),
		At:                at,
		AppliedPromotions: dto.ToAppliedPromotionResponses(applied),
	})
}
