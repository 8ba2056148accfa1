package dto

import (
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePromotionRequest defines the structure for creating a new promotion.
type CreatePromotionRequest struct {
	Code                  string           `json:"code" binding:"required"`
	Name                  string           `json:"name" binding:"required"`
	DiscountType          string           `json:"discountType" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue         decimal.Decimal  `json:"discountValue" binding:"required"`
	MinimumPurchaseAmount *decimal.Decimal `json:"minimumPurchaseAmount,omitempty"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximumDiscountAmount,omitempty"`
	StartDate             time.Time        `json:"startDate" binding:"required"`
	EndDate               time.Time        `json:"endDate" binding:"required"`
	Stackable             bool             `json:"stackable"`
	ApplyToAllProducts    bool             `json:"applyToAllProducts"`
	ProductIDs            []string         `json:"productIDs,omitempty"`
	CategoryIDs           []string         `json:"categoryIDs,omitempty"`
	UsageLimit            *int64           `json:"usageLimit,omitempty" binding:"omitempty,min=1"`
}

// PromotionResponse defines the structure for API responses containing promotion details.
type PromotionResponse struct {
	PromotionID           string           `json:"promotionID"`
	Code                  string           `json:"code"`
	Name                  string           `json:"name"`
	DiscountType          string           `json:"discountType"`
	DiscountValue         decimal.Decimal  `json:"discountValue"`
	MinimumPurchaseAmount *decimal.Decimal `json:"minimumPurchaseAmount,omitempty"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximumDiscountAmount,omitempty"`
	StartDate             time.Time        `json:"startDate"`
	EndDate               time.Time        `json:"endDate"`
	Stackable             bool             `json:"stackable"`
	ApplyToAllProducts    bool             `json:"applyToAllProducts"`
	ProductIDs            []string         `json:"productIDs,omitempty"`
	CategoryIDs           []string         `json:"categoryIDs,omitempty"`
	UsageLimit            *int64           `json:"usageLimit,omitempty"`
	UsageCount            int64            `json:"usageCount"`
	Active                bool             `json:"active"`
	CreatedAt             time.Time        `json:"createdAt"`
	CreatedBy             string           `json:"createdBy"`
}

// ToPromotionResponse converts a domain.Promotion to PromotionResponse DTO.
func ToPromotionResponse(p *domain.Promotion) PromotionResponse {
	return PromotionResponse{
		PromotionID:           p.PromotionID,
		Code:                  p.Code,
		Name:                  p.Name,
		DiscountType:          string(p.DiscountType),
		DiscountValue:         p.DiscountValue,
		MinimumPurchaseAmount: p.MinimumPurchaseAmount,
		MaximumDiscountAmount: p.MaximumDiscountAmount,
		StartDate:             p.StartDate,
		EndDate:               p.EndDate,
		Stackable:             p.Stackable,
		ApplyToAllProducts:    p.ApplyToAllProducts,
		ProductIDs:            p.ProductIDs,
		CategoryIDs:           p.CategoryIDs,
		UsageLimit:            p.UsageLimit,
		UsageCount:            p.UsageCount,
		Active:                p.Active,
		CreatedAt:             p.CreatedAt,
		CreatedBy:             p.CreatedBy,
	}
}

// ToListPromotionResponse converts a slice of promotions to response DTOs.
func ToListPromotionResponse(promos []domain.Promotion) []PromotionResponse {
	responses := make([]PromotionResponse, len(promos))
	for i := range promos {
		responses[i] = ToPromotionResponse(&promos[i])
	}
	return responses
}
