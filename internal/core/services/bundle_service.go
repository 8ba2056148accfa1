package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BundleService prices bundles: either the explicit configured price for the
// currency, or the discounted sum of the constituent products' resolved
// prices. Bundle pricing is promotion-agnostic; bundles do not stack with
// line-item promotions.
type BundleService struct {
	BaseService
	bundleRepo  portsrepo.BundleRepositoryFacade
	productRepo portsrepo.ProductReader
	scheduled   portssvc.ScheduledPriceResolverSvc
	rates       portssvc.ExchangeRateResolverSvc
}

// NewBundleService creates a new BundleService.
func NewBundleService(
	bundleRepo portsrepo.BundleRepositoryFacade,
	productRepo portsrepo.ProductReader,
	scheduled portssvc.ScheduledPriceResolverSvc,
	rates portssvc.ExchangeRateResolverSvc,
) *BundleService {
	return &BundleService{
		bundleRepo:  bundleRepo,
		productRepo: productRepo,
		scheduled:   scheduled,
		rates:       rates,
	}
}

// ResolveBundlePrice evaluates bundle-level validity first (active flag, date
// range, time-of-day window, daily limit, in that order, short-circuiting)
// and returns a BundleUnavailableError naming the failing check. A valid
// bundle is priced by its explicit per-currency price when configured,
// otherwise by the discounted separate price.
func (s *BundleService) ResolveBundlePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	if !currency.IsValid() {
		return domain.Money{}, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, currency)
	}
	bundle, err := s.bundleRepo.FindBundleByID(ctx, bundleID, at)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to load bundle %s: %w", bundleID, err)
	}

	if ok, reason := bundle.AvailabilityAt(at); !ok {
		return domain.Money{}, apperrors.NewBundleUnavailable(bundleID, string(reason))
	}

	if price, ok := bundle.ExplicitPriceIn(currency); ok {
		return domain.NewMoney(price, currency), nil
	}

	separate, err := s.separatePrice(ctx, bundle, currency, at)
	if err != nil {
		return domain.Money{}, err
	}
	if bundle.DiscountPercentage.IsPositive() {
		discount := pricing.PercentOf(separate.Amount, bundle.DiscountPercentage)
		return domain.NewMoney(separate.Amount.Sub(discount), currency), nil
	}
	return separate, nil
}

// CalculateSeparatePrice sums the resolved, converted item prices without
// the bundle discount. It skips the availability check: the caller uses it
// for "savings" display next to an already-resolved bundle price.
func (s *BundleService) CalculateSeparatePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	if !currency.IsValid() {
		return domain.Money{}, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, currency)
	}
	bundle, err := s.bundleRepo.FindBundleByID(ctx, bundleID, at)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to load bundle %s: %w", bundleID, err)
	}
	return s.separatePrice(ctx, bundle, currency, at)
}

// separatePrice is Σ (resolved item price, converted) × quantity.
func (s *BundleService) separatePrice(ctx context.Context, bundle *domain.ProductBundle, currency domain.Currency, at time.Time) (domain.Money, error) {
	total := decimal.Zero
	for _, item := range bundle.Items {
		itemPrice, err := s.scheduled.ResolveScheduledPrice(ctx, item.ProductID, at)
		if err != nil {
			return domain.Money{}, fmt.Errorf("failed to price bundle item %s: %w", item.ProductID, err)
		}
		converted, err := s.rates.Convert(ctx, itemPrice, currency, at)
		if err != nil {
			return domain.Money{}, err
		}
		total = total.Add(converted.MulInt(item.Quantity).Amount)
	}
	return domain.NewMoney(total, currency), nil
}

// CreateBundle validates and persists a bundle with its items.
func (s *BundleService) CreateBundle(ctx context.Context, req dto.CreateBundleRequest, creatorUserID string) (*domain.ProductBundle, error) {
	if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: discount percentage must be in [0, 100)", apperrors.ErrValidation)
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return nil, fmt.Errorf("%w: validUntil cannot precede validFrom", apperrors.ErrValidation)
	}
	if (req.StartTime == "") != (req.EndTime == "") {
		return nil, fmt.Errorf("%w: startTime and endTime must be set together", apperrors.ErrValidation)
	}
	for _, bound := range []string{req.StartTime, req.EndTime} {
		if bound == "" {
			continue
		}
		if _, err := parseTimeOfDay(&bound); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	explicitPrices := make(map[domain.Currency]decimal.Decimal, len(req.ExplicitPrices))
	for code, price := range req.ExplicitPrices {
		currency, err := domain.ParseCurrency(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: explicit price for %s must be positive", apperrors.ErrValidation, code)
		}
		explicitPrices[currency] = price
	}

	items := make([]domain.BundleItem, len(req.Items))
	for i, item := range req.Items {
		if _, err := s.productRepo.FindProductByID(ctx, item.ProductID); err != nil {
			return nil, fmt.Errorf("%w: bundle item product '%s' not found", apperrors.ErrValidation, item.ProductID)
		}
		items[i] = domain.BundleItem{
			BundleItemID:      uuid.NewString(),
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			Optional:          item.Optional,
			SubstitutionGroup: item.SubstitutionGroup,
		}
	}

	now := time.Now()
	bundle := domain.ProductBundle{
		BundleID:           uuid.NewString(),
		Name:               req.Name,
		Active:             true,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DailyLimit:         req.DailyLimit,
		DiscountPercentage: req.DiscountPercentage,
		ExplicitPrices:     explicitPrices,
		Items:              items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bundleRepo.SaveBundle(ctx, bundle); err != nil {
		s.LogError(ctx, err, "failed to save bundle", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create bundle: %w", err)
	}
	return &bundle, nil
}

// ReserveBundleSale atomically claims one sale of the bundle for the day
// through the reserver port. Called by the sale-completion flow, never while
// quoting a price.
func (s *BundleService) ReserveBundleSale(ctx context.Context, bundleID string, day time.Time) (bool, error) {
	reserved, err := s.bundleRepo.TryReserveBundleSale(ctx, bundleID, day)
	if err != nil {
		return false, fmt.Errorf("failed to reserve bundle sale: %w", err)
	}
	if !reserved {
		s.LogWarn(ctx, "bundle daily limit exhausted", slog.String("bundle_id", bundleID))
	}
	return reserved, nil
}

// GetBundle retrieves a bundle with its items and the day's sold count.
func (s *BundleService) GetBundle(ctx context.Context, bundleID string, at time.Time) (*domain.ProductBundle, error) {
	bundle, err := s.bundleRepo.FindBundleByID(ctx, bundleID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle %s: %w", bundleID, err)
	}
	return bundle, nil
}
