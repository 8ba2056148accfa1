package services

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateResolverSvc defines the pure rate-resolution operations used by
// the pricing core.
type ExchangeRateResolverSvc interface {
	// ResolveRate returns the conversion rate to XOF applicable on the
	// given date. The reference currency resolves to 1 without lookup;
	// otherwise ErrRateNotFound when no record covers the date.
	ResolveRate(ctx context.Context, currency domain.Currency, asOf time.Time) (decimal.Decimal, error)

	// Convert re-denominates an amount into the target currency using the
	// rates effective on asOf, rounding half up to two decimals.
	Convert(ctx context.Context, amount domain.Money, to domain.Currency, asOf time.Time) (domain.Money, error)
}

// ExchangeRateAdminSvc defines the administrative operations on rates.
type ExchangeRateAdminSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// ListRates retrieves the stored rates for a currency, newest first.
	ListRates(ctx context.Context, currency domain.Currency) ([]domain.ExchangeRate, error)

	// DeactivateRate retires a rate without deleting it.
	DeactivateRate(ctx context.Context, rateID string, expiry *time.Time, updaterUserID string) error
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateResolverSvc
	ExchangeRateAdminSvc
}
