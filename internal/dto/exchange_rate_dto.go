package dto

import (
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
// Rates are always quoted against the reference currency (XOF).
type CreateExchangeRateRequest struct {
	Currency      string           `json:"currency" binding:"required,len=3,uppercase"`
	RateToXOF     decimal.Decimal  `json:"rateToXOF" binding:"required"`
	EffectiveDate time.Time        `json:"effectiveDate" binding:"required"`
	ExpiryDate    *time.Time       `json:"expiryDate,omitempty"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	Currency       string          `json:"currency"`
	RateToXOF      decimal.Decimal `json:"rateToXOF"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		Currency:       string(rate.Currency),
		RateToXOF:      rate.RateToXOF,
		EffectiveDate:  rate.EffectiveDate,
		ExpiryDate:     rate.ExpiryDate,
		Active:         rate.Active,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
