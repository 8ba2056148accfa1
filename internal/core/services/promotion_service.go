package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	portsrepo "github.com/sahelpos/pricing_app/internal/core/ports/repositories"
	"github.com/sahelpos/pricing_app/internal/dto"
	"github.com/sahelpos/pricing_app/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromotionService applies live promotions to an amount. It never mutates
// usage counts: reserving a redemption is the sale-completion flow's job,
// through the PromotionUsageReserver port.
type PromotionService struct {
	BaseService
	promoRepo portsrepo.PromotionRepositoryFacade
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(promoRepo portsrepo.PromotionRepositoryFacade) *PromotionService {
	return &PromotionService{promoRepo: promoRepo}
}

// ResolvePromotionalPrice collects the promotions live at the instant and
// applicable to the product/category, then applies them in ascending
// promotion ID order. A non-stackable promotion, when present, is applied
// alone and excludes all others (the first by ID wins when several compete);
// otherwise all stackable promotions compound, each computed on the running
// amount. Each promotion's floor (minimum purchase) and cap (maximum
// discount) are honoured individually.
func (s *PromotionService) ResolvePromotionalPrice(ctx context.Context, productID, categoryID string, amount domain.Money, at time.Time) (domain.Money, []domain.AppliedPromotion, error) {
	if amount.IsNegative() {
		return domain.Money{}, nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	promos, err := s.promoRepo.ListPromotionsFor(ctx, productID, categoryID)
	if err != nil {
		return domain.Money{}, nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	eligible := promos[:0:0]
	for _, p := range promos {
		if !p.IsLiveAt(at) || !p.HasRemainingUses() || !p.AppliesTo(productID, categoryID) {
			continue
		}
		eligible = append(eligible, p)
	}
	// Repositories already order by ID; sorting again keeps the stacking
	// order independent of the storage backend.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].PromotionID < eligible[j].PromotionID
	})

	selected := eligible
	for i := range eligible {
		if !eligible[i].Stackable {
			selected = eligible[i : i+1]
			break
		}
	}

	running := amount.Amount
	applied := make([]domain.AppliedPromotion, 0, len(selected))
	for i := range selected {
		p := &selected[i]
		discount := s.discountFor(p, running)
		if !discount.IsPositive() {
			continue
		}
		running = running.Sub(discount)
		applied = append(applied, domain.AppliedPromotion{
			PromotionID:  p.PromotionID,
			Code:         p.Code,
			DiscountType: p.DiscountType,
			Discount:     discount,
		})
	}
	return domain.NewMoney(running, amount.Currency), applied, nil
}

// discountFor computes a single promotion's discount against the running
// amount, honouring the purchase floor and discount cap. Zero means the
// promotion does not apply.
func (s *PromotionService) discountFor(p *domain.Promotion, amount decimal.Decimal) decimal.Decimal {
	if p.MinimumPurchaseAmount != nil && amount.LessThan(*p.MinimumPurchaseAmount) {
		return decimal.Zero
	}
	switch p.DiscountType {
	case domain.DiscountTypePercentage:
		discount := pricing.PercentOf(amount, p.DiscountValue)
		if p.MaximumDiscountAmount != nil && discount.GreaterThan(*p.MaximumDiscountAmount) {
			discount = *p.MaximumDiscountAmount
		}
		return discount
	case domain.DiscountTypeFixedAmount:
		if p.DiscountValue.GreaterThan(amount) {
			return amount
		}
		return p.DiscountValue
	default:
		return decimal.Zero
	}
}

// CreatePromotion validates and persists a new promotion.
func (s *PromotionService) CreatePromotion(ctx context.Context, req dto.CreatePromotionRequest, creatorUserID string) (*domain.Promotion, error) {
	if req.DiscountValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: discount value must be positive", apperrors.ErrValidation)
	}
	discountType := domain.DiscountType(req.DiscountType)
	if discountType == domain.DiscountTypePercentage && req.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: percentage discount cannot exceed 100", apperrors.ErrValidation)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}
	if !req.ApplyToAllProducts && len(req.ProductIDs) == 0 && len(req.CategoryIDs) == 0 {
		return nil, fmt.Errorf("%w: promotion must apply to all products or name products/categories", apperrors.ErrValidation)
	}

	now := time.Now()
	promo := domain.Promotion{
		PromotionID:           uuid.NewString(),
		Code:                  req.Code,
		Name:                  req.Name,
		DiscountType:          discountType,
		DiscountValue:         req.DiscountValue,
		MinimumPurchaseAmount: req.MinimumPurchaseAmount,
		MaximumDiscountAmount: req.MaximumDiscountAmount,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Stackable:             req.Stackable,
		ApplyToAllProducts:    req.ApplyToAllProducts,
		ProductIDs:            req.ProductIDs,
		CategoryIDs:           req.CategoryIDs,
		UsageLimit:            req.UsageLimit,
		Active:                true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.promoRepo.SavePromotion(ctx, promo); err != nil {
		s.LogError(ctx, err, "failed to save promotion", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}
	return &promo, nil
}

// ReservePromotionUsage atomically claims one use of the promotion through
// the reserver port. Called by the sale-completion flow once the sale is
// final, never during quoting.
func (s *PromotionService) ReservePromotionUsage(ctx context.Context, promotionID string) (bool, error) {
	reserved, err := s.promoRepo.TryReservePromotionUsage(ctx, promotionID)
	if err != nil {
		return false, fmt.Errorf("failed to reserve promotion usage: %w", err)
	}
	if !reserved {
		s.LogWarn(ctx, "promotion usage limit exhausted", slog.String("promotion_id", promotionID))
	}
	return reserved, nil
}

// ListActivePromotions retrieves all currently active promotions.
func (s *PromotionService) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	promos, err := s.promoRepo.ListActivePromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promos, nil
}
