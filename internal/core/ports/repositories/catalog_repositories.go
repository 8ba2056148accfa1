package repositories

import (
	"context"

	"github.com/sahelpos/pricing_app/internal/core/domain"
)

// ProductReader defines the read-only base-price lookup the resolvers need.
type ProductReader interface {
	// FindProductByID retrieves a product with its stored base price.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// ScheduledPriceRuleReader defines read operations for scheduled price rules.
type ScheduledPriceRuleReader interface {
	// ListRulesForProduct retrieves every rule targeting the product,
	// active or not. Validity filtering is the resolver's job.
	ListRulesForProduct(ctx context.Context, productID string) ([]domain.ScheduledPriceRule, error)
}

// ScheduledPriceRuleWriter defines write operations for scheduled price rules.
type ScheduledPriceRuleWriter interface {
	// SaveRule persists a new scheduled price rule.
	SaveRule(ctx context.Context, rule domain.ScheduledPriceRule) error
}

// ScheduledPriceRuleRepositoryFacade combines all rule repository interfaces.
type ScheduledPriceRuleRepositoryFacade interface {
	ScheduledPriceRuleReader
	ScheduledPriceRuleWriter
}
