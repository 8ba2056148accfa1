package repositories

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// ListRatesForCurrency retrieves every stored rate for the currency,
	// newest effective date first. Selection of the applicable rate is the
	// resolver's job so it stays testable without a database.
	ListRatesForCurrency(ctx context.Context, currency domain.Currency) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data. Rates
// are retained for audit: there is no delete, only deactivation.
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeactivateExchangeRate clears the active flag and optionally sets an
	// expiry date on an existing rate.
	DeactivateExchangeRate(ctx context.Context, rateID string, expiry *time.Time, updatedBy string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
