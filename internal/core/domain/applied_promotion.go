package domain

import "github.com/shopspring/decimal"

// AppliedPromotion records one promotion actually applied during resolution,
// for receipts and audit. Discount is the amount taken off, in the currency
// of the amount being discounted.
type AppliedPromotion struct {
	PromotionID  string          `json:"promotionID"`
	Code         string          `json:"code"`
	DiscountType DiscountType    `json:"discountType"`
	Discount     decimal.Decimal `json:"discount"`
}
