package services

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/sahelpos/pricing_app/internal/dto"
)

// PromotionResolverSvc applies live promotions to an amount.
type PromotionResolverSvc interface {
	// ResolvePromotionalPrice returns the post-discount amount and the
	// promotions actually applied. Usage counts are never mutated here;
	// reservation belongs to the sale-completion flow.
	ResolvePromotionalPrice(ctx context.Context, productID, categoryID string, amount domain.Money, at time.Time) (domain.Money, []domain.AppliedPromotion, error)
}

// PromotionAdminSvc defines the administrative operations on promotions.
type PromotionAdminSvc interface {
	// CreatePromotion persists a new promotion.
	CreatePromotion(ctx context.Context, req dto.CreatePromotionRequest, creatorUserID string) (*domain.Promotion, error)

	// ListActivePromotions retrieves all currently active promotions.
	ListActivePromotions(ctx context.Context) ([]domain.Promotion, error)
}

// PromotionRedemptionSvc reserves promotion uses at sale completion.
type PromotionRedemptionSvc interface {
	// ReservePromotionUsage atomically claims one use of the promotion,
	// reporting false when the usage limit is exhausted.
	ReservePromotionUsage(ctx context.Context, promotionID string) (bool, error)
}

// PromotionSvcFacade combines all promotion service interfaces.
type PromotionSvcFacade interface {
	PromotionResolverSvc
	PromotionAdminSvc
	PromotionRedemptionSvc
}
