package services

import (
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	portssvc "github.com/sahelpos/pricing_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Exchange rates and scheduled prices first: the bundle composer and
	// the facade depend on them.
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.ScheduledPrice = NewScheduledPriceService(repos.ProductRepo, repos.RuleRepo)
	container.Promotion = NewPromotionService(repos.PromotionRepo)
	container.Bundle = NewBundleService(repos.BundleRepo, repos.ProductRepo, container.ScheduledPrice, container.ExchangeRate)
	container.Pricing = NewPricingService(container.ScheduledPrice, container.Promotion, container.ExchangeRate, container.Bundle, repos.ProductRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.ExchangeRateSvcFacade   = (*ExchangeRateService)(nil)
	_ portssvc.ScheduledPriceSvcFacade = (*ScheduledPriceService)(nil)
	_ portssvc.PromotionSvcFacade      = (*PromotionService)(nil)
	_ portssvc.BundleSvcFacade         = (*BundleService)(nil)
	_ portssvc.PricingSvcFacade        = (*PricingService)(nil)
)
