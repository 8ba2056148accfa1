package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorID identifies who is performing a mutating request, for audit fields.
// The gateway in front of this service authenticates the caller and forwards
// the identity in a header; without one the change is recorded as "system".
func actorID(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor-ID"); actor != "" {
		return actor
	}
	return "system"
}

// queryInstant parses the optional "at" query parameter (RFC 3339), falling
// back to now. The bool result reports whether parsing failed.
func queryInstant(c *gin.Context, now time.Time) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return now, true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// queryCurrency parses the optional "currency" query parameter, defaulting to
// the reference currency.
func queryCurrency(c *gin.Context) (domain.Currency, error) {
	raw := c.Query("currency")
	if raw == "" {
		return domain.ReferenceCurrency, nil
	}
	return domain.ParseCurrency(raw)
}

// respondServiceError maps service errors onto HTTP statuses: validation to
// 400, missing resources to 404, missing exchange rates to 422 (the request
// was well-formed, the rate table just cannot answer it), everything else to
// an opaque 500.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateNotFound):
		logger.Warn("Exchange rate not found", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Service call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
