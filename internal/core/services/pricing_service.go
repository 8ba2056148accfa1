package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
)

// PricingService is the facade callers use for every price question. It
// composes scheduled price → currency conversion → promotions, and delegates
// bundle pricing wholesale to the bundle composer. Every method is a pure
// query over the current rule/rate state; nothing here mutates counters.
type PricingService struct {
	BaseService
	scheduled   portssvc.ScheduledPriceResolverSvc
	promotions  portssvc.PromotionResolverSvc
	rates       portssvc.ExchangeRateResolverSvc
	bundles     portssvc.BundleResolverSvc
	productRepo portsrepo.ProductReader
}

// NewPricingService creates a new PricingService.
func NewPricingService(
	scheduled portssvc.ScheduledPriceResolverSvc,
	promotions portssvc.PromotionResolverSvc,
	rates portssvc.ExchangeRateResolverSvc,
	bundles portssvc.BundleResolverSvc,
	productRepo portsrepo.ProductReader,
) *PricingService {
	return &PricingService{
		scheduled:   scheduled,
		promotions:  promotions,
		rates:       rates,
		bundles:     bundles,
		productRepo: productRepo,
	}
}

// ResolveProductPrice resolves the product's scheduled price in its native
// currency, then converts to the requested currency. Promotions are not
// folded in: catalog display shows them separately.
func (s *PricingService) ResolveProductPrice(ctx context.Context, productID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	native, err := s.scheduled.ResolveScheduledPrice(ctx, productID, at)
	if err != nil {
		return domain.Money{}, err
	}
	return s.rates.Convert(ctx, native, currency, at)
}

// ResolveCartLinePrice prices an actual cart line: scheduled price, currency
// conversion, then live promotions applied to the converted amount.
func (s *PricingService) ResolveCartLinePrice(ctx context.Context, productID string, currency domain.Currency, at time.Time) (domain.Money, []domain.AppliedPromotion, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return domain.Money{}, nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	price, err := s.ResolveProductPrice(ctx, productID, currency, at)
	if err != nil {
		return domain.Money{}, nil, err
	}
	return s.promotions.ResolvePromotionalPrice(ctx, productID, product.CategoryID, price, at)
}

// ResolveBundlePrice delegates to the bundle composer.
func (s *PricingService) ResolveBundlePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	return s.bundles.ResolveBundlePrice(ctx, bundleID, currency, at)
}

// BundleSavings returns separate price minus bundle price for UI display.
// Non-negative whenever a bundle discount is configured.
func (s *PricingService) BundleSavings(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error) {
	separate, err := s.bundles.CalculateSeparatePrice(ctx, bundleID, currency, at)
	if err != nil {
		return domain.Money{}, err
	}
	price, err := s.bundles.ResolveBundlePrice(ctx, bundleID, currency, at)
	if err != nil {
		return domain.Money{}, err
	}
	return separate.Sub(price)
}
