package dto

import (
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBundleItemRequest is one constituent of a bundle being created.
type CreateBundleItemRequest struct {
	ProductID         string `json:"productID" binding:"required"`
	Quantity          int64  `json:"quantity" binding:"required,min=1"`
	Optional          bool   `json:"optional"`
	SubstitutionGroup string `json:"substitutionGroup,omitempty"`
}

// CreateBundleRequest defines the structure for creating a product bundle.
// ExplicitPrices is keyed by currency code; when absent the bundle is priced
// as the discounted sum of its parts.
type CreateBundleRequest struct {
	Name               string                     `json:"name" binding:"required"`
	Items              []CreateBundleItemRequest  `json:"items" binding:"required,min=1,dive"`
	ExplicitPrices     map[string]decimal.Decimal `json:"explicitPrices,omitempty"`
	DiscountPercentage decimal.Decimal            `json:"discountPercentage"`
	ValidFrom          *time.Time                 `json:"validFrom,omitempty"`
	ValidUntil         *time.Time                 `json:"validUntil,omitempty"`
	StartTime          string                     `json:"startTime,omitempty" binding:"omitempty,len=5"`
	EndTime            string                     `json:"endTime,omitempty" binding:"omitempty,len=5"`
	DailyLimit         int64                      `json:"dailyLimit" binding:"omitempty,min=0"`
}

// BundleItemResponse mirrors domain.BundleItem for API responses.
type BundleItemResponse struct {
	BundleItemID      string `json:"bundleItemID"`
	ProductID         string `json:"productID"`
	Quantity          int64  `json:"quantity"`
	Optional          bool   `json:"optional"`
	SubstitutionGroup string `json:"substitutionGroup,omitempty"`
}

// BundleResponse defines the structure for API responses containing bundle details.
type BundleResponse struct {
	BundleID           string                     `json:"bundleID"`
	Name               string                     `json:"name"`
	Active             bool                       `json:"active"`
	ValidFrom          *time.Time                 `json:"validFrom,omitempty"`
	ValidUntil         *time.Time                 `json:"validUntil,omitempty"`
	StartTime          string                     `json:"startTime,omitempty"`
	EndTime            string                     `json:"endTime,omitempty"`
	DailyLimit         int64                      `json:"dailyLimit"`
	TodaySoldCount     int64                      `json:"todaySoldCount"`
	DiscountPercentage decimal.Decimal            `json:"discountPercentage"`
	ExplicitPrices     map[string]decimal.Decimal `json:"explicitPrices,omitempty"`
	Items              []BundleItemResponse       `json:"items"`
	CreatedAt          time.Time                  `json:"createdAt"`
	CreatedBy          string                     `json:"createdBy"`
}

// ToBundleResponse converts a domain.ProductBundle to BundleResponse DTO.
func ToBundleResponse(b *domain.ProductBundle) BundleResponse {
	items := make([]BundleItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BundleItemResponse{
			BundleItemID:      item.BundleItemID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			Optional:          item.Optional,
			SubstitutionGroup: item.SubstitutionGroup,
		}
	}
	var prices map[string]decimal.Decimal
	if len(b.ExplicitPrices) > 0 {
		prices = make(map[string]decimal.Decimal, len(b.ExplicitPrices))
		for currency, price := range b.ExplicitPrices {
			prices[string(currency)] = price
		}
	}
	return BundleResponse{
		BundleID:           b.BundleID,
		Name:               b.Name,
		Active:             b.Active,
		ValidFrom:          b.ValidFrom,
		ValidUntil:         b.ValidUntil,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DailyLimit:         b.DailyLimit,
		TodaySoldCount:     b.TodaySoldCount,
		DiscountPercentage: b.DiscountPercentage,
		ExplicitPrices:     prices,
		Items:              items,
		CreatedAt:          b.CreatedAt,
		CreatedBy:          b.CreatedBy,
	}
}
