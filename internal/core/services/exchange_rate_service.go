package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ExchangeRateService resolves conversion rates against the reference
// currency (XOF) and handles rate administration. Resolution is a pure
// function of the stored records and the as-of date.
type ExchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo}
}

// ResolveRate returns the conversion rate to XOF applicable on asOf: the
// active record with the latest effective date not after asOf whose expiry
// (if any) has not passed. XOF itself resolves to 1 without a lookup. When
// no record qualifies the caller gets ErrRateNotFound: pricing in that
// currency is impossible on that date, and no fallback rate is invented.
func (s *ExchangeRateService) ResolveRate(ctx context.Context, currency domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	if !currency.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, currency)
	}
	if currency.IsReference() {
		return one, nil
	}

	rates, err := s.rateRepo.ListRatesForCurrency(ctx, currency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list exchange rates for %s: %w", currency, err)
	}

	var applicable *domain.ExchangeRate
	for i := range rates {
		rate := &rates[i]
		if !rate.CoversDate(asOf) {
			continue
		}
		if applicable == nil || domain.DateOnly(rate.EffectiveDate).After(domain.DateOnly(applicable.EffectiveDate)) {
			applicable = rate
		}
	}
	if applicable == nil {
		return decimal.Zero, fmt.Errorf("%w: no active rate for %s covering %s",
			apperrors.ErrRateNotFound, currency, asOf.Format("2006-01-02"))
	}
	return applicable.RateToXOF, nil
}

// Convert re-denominates an amount into the target currency via the
// reference currency: amount × rate(from) ÷ rate(to), rounded half up to two
// decimal places. Same-currency conversion returns the amount unchanged.
func (s *ExchangeRateService) Convert(ctx context.Context, amount domain.Money, to domain.Currency, asOf time.Time) (domain.Money, error) {
	if !to.IsValid() {
		return domain.Money{}, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, to)
	}
	if amount.Currency == to {
		return amount, nil
	}

	fromRate, err := s.ResolveRate(ctx, amount.Currency, asOf)
	if err != nil {
		return domain.Money{}, err
	}
	toRate, err := s.ResolveRate(ctx, to, asOf)
	if err != nil {
		return domain.Money{}, err
	}

	converted := amount.Amount.Mul(fromRate).Div(toRate).Round(2)
	return domain.NewMoney(converted, to), nil
}

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if currency.IsReference() {
		return nil, fmt.Errorf("%w: the reference currency %s does not take a rate", apperrors.ErrValidation, domain.ReferenceCurrency)
	}
	if req.RateToXOF.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.ExpiryDate != nil && req.ExpiryDate.Before(req.EffectiveDate) {
		return nil, fmt.Errorf("%w: expiry date cannot precede effective date", apperrors.ErrValidation)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Currency:       currency,
		RateToXOF:      req.RateToXOF.Round(6),
		EffectiveDate:  req.EffectiveDate,
		ExpiryDate:     req.ExpiryDate,
		Active:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate", slog.String("currency", string(currency)))
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}
	return &rate, nil
}

// ListRates retrieves the stored rates for a currency, newest first.
func (s *ExchangeRateService) ListRates(ctx context.Context, currency domain.Currency) ([]domain.ExchangeRate, error) {
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, currency)
	}
	rates, err := s.rateRepo.ListRatesForCurrency(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// DeactivateRate retires a rate without deleting it; historical rates are
// kept for audit.
func (s *ExchangeRateService) DeactivateRate(ctx context.Context, rateID string, expiry *time.Time, updaterUserID string) error {
	if rateID == "" {
		return fmt.Errorf("%w: rate ID is required", apperrors.ErrValidation)
	}
	if err := s.rateRepo.DeactivateExchangeRate(ctx, rateID, expiry, updaterUserID); err != nil {
		return fmt.Errorf("failed to deactivate exchange rate %s: %w", rateID, err)
	}
	s.LogInfo(ctx, "exchange rate deactivated", slog.String("rate_id", rateID))
	return nil
}
