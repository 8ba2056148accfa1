package dto

import (
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceResponse is the answer to "what does this product cost".
// AppliedPromotions is only populated for cart-line quotes.
type PriceResponse struct {
	ProductID         string                     `json:"productID"`
	Currency          string                     `json:"currency"`
	Amount            decimal.Decimal            `json:"amount"`
	At                time.Time                  `json:"at"`
	AppliedPromotions []AppliedPromotionResponse `json:"appliedPromotions,omitempty"`
}

// AppliedPromotionResponse is one promotion applied during a quote.
type AppliedPromotionResponse struct {
	PromotionID  string          `json:"promotionID"`
	Code         string          `json:"code"`
	DiscountType string          `json:"discountType"`
	Discount     decimal.Decimal `json:"discount"`
}

// PromotionQuoteRequest asks for the promotional price of an amount for a
// product and/or category. At defaults to the server clock when omitted.
type PromotionQuoteRequest struct {
	ProductID  string          `json:"productID,omitempty"`
	CategoryID string          `json:"categoryID,omitempty"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"required,len=3,uppercase"`
	At         *time.Time      `json:"at,omitempty"`
}

// PromotionQuoteResponse carries the post-discount amount and the promotions
// actually applied, for receipt/audit purposes.
type PromotionQuoteResponse struct {
	OriginalAmount    decimal.Decimal            `json:"originalAmount"`
	FinalAmount       decimal.Decimal            `json:"finalAmount"`
	Currency          string                     `json:"currency"`
	At                time.Time                  `json:"at"`
	AppliedPromotions []AppliedPromotionResponse `json:"appliedPromotions"`
}

// BundlePriceResponse reports either a priced bundle or a structured
// unavailability reason for UI messaging.
type BundlePriceResponse struct {
	BundleID      string           `json:"bundleID"`
	Available     bool             `json:"available"`
	Reason        string           `json:"reason,omitempty"`
	Currency      string           `json:"currency"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	SeparatePrice *decimal.Decimal `json:"separatePrice,omitempty"`
	Savings       *decimal.Decimal `json:"savings,omitempty"`
	At            time.Time        `json:"at"`
}

// ToAppliedPromotionResponses converts applied promotion records to DTOs.
func ToAppliedPromotionResponses(applied []domain.AppliedPromotion) []AppliedPromotionResponse {
	responses := make([]AppliedPromotionResponse, len(applied))
	for i, a := range applied {
		responses[i] = AppliedPromotionResponse{
			PromotionID:  a.PromotionID,
			Code:         a.Code,
			DiscountType: string(a.DiscountType),
			Discount:     a.Discount,
		}
	}
	return responses
}
