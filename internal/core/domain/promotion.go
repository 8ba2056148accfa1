package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType determines how a promotion's value is interpreted.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Promotion is a date-bounded discount with optional purchase floor, discount
// cap and global usage limit. A promotion applies either to every product or
// to an explicit set of products/categories. UsageCount is maintained by the
// sale-completion flow, never by the resolvers.
type Promotion struct {
	PromotionID           string           `json:"promotionID"`
	Code                  string           `json:"code"`
	Name                  string           `json:"name"`
	DiscountType          DiscountType     `json:"discountType"`
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
	AuditFields
}

// IsLiveAt reports whether the promotion is active and inside its start/end
// instants (inclusive on both ends).
func (p *Promotion) IsLiveAt(instant time.Time) bool {
	if !p.Active {
		return false
	}
	return !instant.Before(p.StartDate) && !instant.After(p.EndDate)
}

// HasRemainingUses reports whether the global usage cap still allows another
// redemption. An unset limit means unlimited.
func (p *Promotion) HasRemainingUses() bool {
	if p.UsageLimit == nil {
		return true
	}
	return p.UsageCount < *p.UsageLimit
}

// AppliesTo reports whether the promotion covers the given product or its
// category.
func (p *Promotion) AppliesTo(productID, categoryID string) bool {
	if p.ApplyToAllProducts {
		return true
	}
	for _, id := range p.ProductIDs {
		if id == productID && productID != "" {
			return true
		}
	}
	for _, id := range p.CategoryIDs {
		if id == categoryID && categoryID != "" {
			return true
		}
	}
	return false
}
