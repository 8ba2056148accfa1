package services

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/sahelpos/pricing_app/internal/dto"
)

// ScheduledPriceResolverSvc resolves a product's effective price in its
// native currency at a given instant.
type ScheduledPriceResolverSvc interface {
	// ResolveScheduledPrice applies the winning active rule to the
	// product's base price, or returns the base price unchanged when no
	// rule is valid at the instant.
	ResolveScheduledPrice(ctx context.Context, productID string, at time.Time) (domain.Money, error)
}

// ScheduledPriceAdminSvc defines the administrative operations on rules.
type ScheduledPriceAdminSvc interface {
	// CreateRule persists a new scheduled price rule.
	CreateRule(ctx context.Context, req dto.CreatePriceRuleRequest, creatorUserID string) (*domain.ScheduledPriceRule, error)

	// ListRulesForProduct retrieves every rule targeting the product.
	ListRulesForProduct(ctx context.Context, productID string) ([]domain.ScheduledPriceRule, error)
}

// ScheduledPriceSvcFacade combines all scheduled price service interfaces.
type ScheduledPriceSvcFacade interface {
	ScheduledPriceResolverSvc
	ScheduledPriceAdminSvc
}
