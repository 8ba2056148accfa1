package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the ports ExchangeRateRepositoryFacade
// interface using pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

// SaveExchangeRate inserts a new exchange rate.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, currency, rate_to_xof, effective_date, expiry_date, active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.Currency, rate.RateToXOF, rate.EffectiveDate, rate.ExpiryDate, rate.Active,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// ListRatesForCurrency retrieves every stored rate for the currency, newest
// effective date first. Historical rows are kept forever; selection happens
// in the resolver.
func (r *PgxExchangeRateRepository) ListRatesForCurrency(ctx context.Context, currency domain.Currency) ([]domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency, rate_to_xof, effective_date, expiry_date, active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE currency = $1
		ORDER BY effective_date DESC
	`
	rows, err := r.db.Query(ctx, query, currency)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(
			&rate.ExchangeRateID, &rate.Currency, &rate.RateToXOF, &rate.EffectiveDate, &rate.ExpiryDate, &rate.Active,
			&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading exchange rates: %w", err)
	}
	return rates, nil
}

// DeactivateExchangeRate clears the active flag and optionally sets an
// expiry date. Rates are never deleted.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID string, expiry *time.Time, updatedBy string) error {
	query := `
		UPDATE exchange_rates
		SET active = FALSE,
			expiry_date = COALESCE($2, expiry_date),
			last_updated_at = NOW(),
			last_updated_by = $3
		WHERE exchange_rate_id = $1
	`
	tag, err := r.db.Exec(ctx, query, rateID, expiry, updatedBy)
	if err != nil {
		return fmt.Errorf("error deactivating exchange rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + rateID)
	}
	return nil
}
