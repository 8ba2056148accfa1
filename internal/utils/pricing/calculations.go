package pricing

import (
	"fmt"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentOf computes pct% of base, rounded half up to two decimal places.
// This is the single rounding point for every percentage adjustment so that
// scheduled rules, promotions and bundle discounts agree on the cents.
func PercentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred).Round(2)
}

// ApplyAdjustment applies a scheduled-rule adjustment to a base amount.
//
// FIXED returns the configured amount verbatim, ignoring the base.
// DISCOUNT subtracts a percentage of the base (percentage takes precedence
// when both are present) or an absolute amount, floored at zero. MARKUP is
// symmetric with no ceiling.
//
// A rule whose type has no matching amount/percentage is a data-quality
// problem, not a pricing failure: the base is returned unchanged together
// with an ErrInvalidRuleConfig the caller should log.
func ApplyAdjustment(base decimal.Decimal, priceType domain.PriceType, amount, percentage *decimal.Decimal) (decimal.Decimal, error) {
	switch priceType {
	case domain.PriceTypeFixed:
		if amount == nil {
			return base, fmt.Errorf("%w: FIXED rule without amount", apperrors.ErrInvalidRuleConfig)
		}
		return *amount, nil

	case domain.PriceTypeDiscount:
		if percentage != nil {
			return base.Sub(PercentOf(base, *percentage)), nil
		}
		if amount != nil {
			result := base.Sub(*amount)
			if result.IsNegative() {
				return decimal.Zero, nil
			}
			return result, nil
		}
		return base, fmt.Errorf("%w: DISCOUNT rule without amount or percentage", apperrors.ErrInvalidRuleConfig)

	case domain.PriceTypeMarkup:
		if percentage != nil {
			return base.Add(PercentOf(base, *percentage)), nil
		}
		if amount != nil {
			return base.Add(*amount), nil
		}
		return base, fmt.Errorf("%w: MARKUP rule without amount or percentage", apperrors.ErrInvalidRuleConfig)

	default:
		return base, fmt.Errorf("%w: unknown price type '%s'", apperrors.ErrInvalidRuleConfig, priceType)
	}
}
