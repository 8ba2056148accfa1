package repositories

import (
	"context"

	"github.com/sahelpos/pricing_app/internal/core/domain"
)

// PromotionReader defines read operations for promotion data.
type PromotionReader interface {
	// ListPromotionsFor retrieves promotions applicable to the product or
	// category, plus those applying to all products, ordered by promotion
	// ID ascending so stacking order is stable across storage backends.
	ListPromotionsFor(ctx context.Context, productID, categoryID string) ([]domain.Promotion, error)

	// ListActivePromotions retrieves all currently active promotions.
	ListActivePromotions(ctx context.Context) ([]domain.Promotion, error)
}

// PromotionWriter defines write operations for promotion data.
type PromotionWriter interface {
	// SavePromotion persists a new promotion with its applicability sets.
	SavePromotion(ctx context.Context, promo domain.Promotion) error
}

// PromotionUsageReserver isolates the race-prone usage-count mutation behind
// an atomic compare-and-increment. Called by the sale-completion flow, never
// by the resolvers.
type PromotionUsageReserver interface {
	// TryReservePromotionUsage increments the usage count iff it is still
	// under the limit, reporting whether the reservation succeeded.
	TryReservePromotionUsage(ctx context.Context, promotionID string) (bool, error)
}

// PromotionRepositoryFacade combines all promotion repository interfaces.
type PromotionRepositoryFacade interface {
	PromotionReader
	PromotionWriter
	PromotionUsageReserver
}
