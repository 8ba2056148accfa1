package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	"github.com/sahelpos/pricing_app/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// CachedExchangeRateRepository decorates an exchange rate repository with a
// short-TTL Redis read-through cache on the list-by-currency path. Every till
// query resolves at least one rate, so this is the hottest read in the system.
// Writes pass straight through and invalidate the affected currency.
type CachedExchangeRateRepository struct {
	portsrepo.ExchangeRateRepositoryFacade
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedExchangeRateRepository wraps the given repository. A nil client
// disables caching and passes every call through.
func NewCachedExchangeRateRepository(next portsrepo.ExchangeRateRepositoryFacade, rdb *redis.Client, ttl time.Duration) *CachedExchangeRateRepository {
	return &CachedExchangeRateRepository{ExchangeRateRepositoryFacade: next, rdb: rdb, ttl: ttl}
}

func rateKey(currency domain.Currency) string {
	return "pricing:rates:" + string(currency)
}

// ListRatesForCurrency serves from Redis when possible and falls back to the
// wrapped repository. Cache failures are logged and never surfaced; a stale or
// missing cache must not break price resolution.
func (c *CachedExchangeRateRepository) ListRatesForCurrency(ctx context.Context, currency domain.Currency) ([]domain.ExchangeRate, error) {
	if c.rdb == nil {
		return c.ExchangeRateRepositoryFacade.ListRatesForCurrency(ctx, currency)
	}

	key := rateKey(currency)
	if payload, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var rates []domain.ExchangeRate
		if err := json.Unmarshal(payload, &rates); err == nil {
			return rates, nil
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Discarding undecodable exchange rate cache entry", "key", key)
	} else if err != redis.Nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Exchange rate cache read failed", "key", key, "error", err.Error())
	}

	rates, err := c.ExchangeRateRepositoryFacade.ListRatesForCurrency(ctx, currency)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rates); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Exchange rate cache write failed", "key", key, "error", err.Error())
		}
	}
	return rates, nil
}

// SaveExchangeRate persists the rate and drops the cached list for its
// currency.
func (c *CachedExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	if err := c.ExchangeRateRepositoryFacade.SaveExchangeRate(ctx, rate); err != nil {
		return err
	}
	c.invalidate(ctx, rate.Currency)
	return nil
}

// DeactivateExchangeRate passes through and drops every cached currency list,
// since the rate's currency is not known from its ID alone.
func (c *CachedExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID string, expiry *time.Time, updatedBy string) error {
	if err := c.ExchangeRateRepositoryFacade.DeactivateExchangeRate(ctx, rateID, expiry, updatedBy); err != nil {
		return err
	}
	for _, currency := range domain.SupportedCurrencies() {
		c.invalidate(ctx, currency)
	}
	return nil
}

func (c *CachedExchangeRateRepository) invalidate(ctx context.Context, currency domain.Currency) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, rateKey(currency)).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Exchange rate cache invalidation failed", "currency", string(currency), "error", err.Error())
	}
}
