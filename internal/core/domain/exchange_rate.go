package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate from a currency to the reference
// currency (XOF), effective from a given date. Rates carry six decimal
// places. Historical rates are retained for audit and are never deleted;
// only Active and ExpiryDate may change after creation.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	Currency       Currency        `json:"currency"`
	RateToXOF      decimal.Decimal `json:"rateToXOF"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	Active         bool            `json:"active"`
	AuditFields
}

// CoversDate reports whether this rate record is usable on the given date:
// active, effective on or before the date, and not yet expired.
func (r *ExchangeRate) CoversDate(asOf time.Time) bool {
	if !r.Active {
		return false
	}
	asOfDay := DateOnly(asOf)
	if DateOnly(r.EffectiveDate).After(asOfDay) {
		return false
	}
	if r.ExpiryDate != nil && DateOnly(*r.ExpiryDate).Before(asOfDay) {
		return false
	}
	return true
}

// DateOnly reduces an instant to its calendar date as observed in the
// instant's own location, normalised to UTC midnight so dates compare with
// Before/After/Equal regardless of the original zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
