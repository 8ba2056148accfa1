package repositories

// RepositoryProvider bundles the repository implementations the service
// container needs, so wiring stays in one place.
type RepositoryProvider struct {
	ProductRepo      ProductReader
	RuleRepo         ScheduledPriceRuleRepositoryFacade
	PromotionRepo    PromotionRepositoryFacade
	BundleRepo       BundleRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
}
