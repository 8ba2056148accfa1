package dto

import (
	"fmt"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePriceRuleRequest defines the structure for creating a scheduled price
// rule. TimeFrom/TimeUntil are wall-clock bounds in "HH:mm". DaysOfWeek uses
// 0=Sunday..6=Saturday.
type CreatePriceRuleRequest struct {
	ProductID  string           `json:"productID" binding:"required"`
	PriceType  string           `json:"priceType" binding:"required,oneof=FIXED DISCOUNT MARKUP"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Currency   string           `json:"currency" binding:"required,len=3,uppercase"`
	ValidFrom  *time.Time       `json:"validFrom,omitempty"`
	ValidUntil *time.Time       `json:"validUntil,omitempty"`
	TimeFrom   *string          `json:"timeFrom,omitempty" binding:"omitempty,len=5"`
	TimeUntil  *string          `json:"timeUntil,omitempty" binding:"omitempty,len=5"`
	DaysOfWeek []int            `json:"daysOfWeek,omitempty" binding:"omitempty,dive,min=0,max=6"`
	Priority   int              `json:"priority"`
}

// PriceRuleResponse defines the structure for API responses containing rule details.
type PriceRuleResponse struct {
	RuleID     string           `json:"ruleID"`
	ProductID  string           `json:"productID"`
	PriceType  string           `json:"priceType"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Currency   string           `json:"currency"`
	ValidFrom  *time.Time       `json:"validFrom,omitempty"`
	ValidUntil *time.Time       `json:"validUntil,omitempty"`
	TimeFrom   *string          `json:"timeFrom,omitempty"`
	TimeUntil  *string          `json:"timeUntil,omitempty"`
	DaysOfWeek []int            `json:"daysOfWeek,omitempty"`
	Priority   int              `json:"priority"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"createdAt"`
	CreatedBy  string           `json:"createdBy"`
}

func formatTimeOfDay(t *domain.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	return &s
}

// ToPriceRuleResponse converts a domain.ScheduledPriceRule to its response DTO.
func ToPriceRuleResponse(rule *domain.ScheduledPriceRule) PriceRuleResponse {
	days := make([]int, 0, len(rule.Window.DaysOfWeek))
	for _, d := range rule.Window.DaysOfWeek {
		days = append(days, int(d))
	}
	return PriceRuleResponse{
		RuleID:     rule.RuleID,
		ProductID:  rule.ProductID,
		PriceType:  string(rule.PriceType),
		Amount:     rule.Amount,
		Percentage: rule.Percentage,
		Currency:   string(rule.Currency),
		ValidFrom:  rule.Window.ValidFrom,
		ValidUntil: rule.Window.ValidUntil,
		TimeFrom:   formatTimeOfDay(rule.Window.TimeFrom),
		TimeUntil:  formatTimeOfDay(rule.Window.TimeUntil),
		DaysOfWeek: days,
		Priority:   rule.Priority,
		Active:     rule.Active,
		CreatedAt:  rule.CreatedAt,
		CreatedBy:  rule.CreatedBy,
	}
}

// ToListPriceRuleResponse converts a slice of rules to response DTOs.
func ToListPriceRuleResponse(rules []domain.ScheduledPriceRule) []PriceRuleResponse {
	responses := make([]PriceRuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToPriceRuleResponse(&rules[i])
	}
	return responses
}
