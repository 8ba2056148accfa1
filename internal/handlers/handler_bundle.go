package handlers

import (
	"log/slog"
	"net/http"

	ports "github.com/sahelpos/pricing_app/internal/core/ports"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bundleHandler handles HTTP requests related to product bundles.
type bundleHandler struct {
	bundleService portssvc.BundleSvcFacade
	clock         ports.Clock
}

func newBundleHandler(bs portssvc.BundleSvcFacade, clock ports.Clock) *bundleHandler {
	return &bundleHandler{bundleService: bs, clock: clock}
}

// registerBundleRoutes registers routes related to product bundles.
func registerBundleRoutes(rg *gin.RouterGroup, bundleService portssvc.BundleSvcFacade, clock ports.Clock) {
	h := newBundleHandler(bundleService, clock)

	bundles := rg.Group("/bundles")
	{
		bundles.POST("", h.createBundle)
		bundles.GET("/:bundleID", h.getBundle)
		bundles.POST("/:bundleID/reserve", h.reserveSale)
	}
}

func (h *bundleHandler) createBundle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBundle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creator := actorID(c)
	logger = logger.With(slog.String("creator", creator), slog.String("name", req.Name))
	logger.Info("Received request to create bundle", slog.Int("item_count", len(req.Items)))

	bundle, err := h.bundleService.CreateBundle(c.Request.Context(), req, creator)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bundle")
		return
	}

	logger.Info("Bundle created successfully", slog.String("bundle_id", bundle.BundleID))
	c.JSON(http.StatusCreated, dto.ToBundleResponse(bundle))
}

func (h *bundleHandler) getBundle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bundleID := c.Param("bundleID")

	at, ok := queryInstant(c, h.clock.Now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' parameter, expected RFC 3339"})
		return
	}

	bundle, err := h.bundleService.GetBundle(c.Request.Context(), bundleID, at)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve bundle")
		return
	}
	c.JSON(http.StatusOK, dto.ToBundleResponse(bundle))
}

// reserveSale claims one sale of the bundle for the day at sale completion.
// A 409 answer means the daily limit is exhausted.
func (h *bundleHandler) reserveSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bundleID := c.Param("bundleID")
	logger = logger.With(slog.String("bundle_id", bundleID))

	at, ok := queryInstant(c, h.clock.Now())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' parameter, expected RFC 3339"})
		return
	}

	reserved, err := h.bundleService.ReserveBundleSale(c.Request.Context(), bundleID, at)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reserve bundle sale")
		return
	}
	if !reserved {
		c.JSON(http.StatusConflict, gin.H{"reserved": false, "error": "Bundle daily limit reached"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reserved": true})
}
