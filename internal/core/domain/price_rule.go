package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceType determines how a scheduled rule adjusts a product's base price.
type PriceType string

const (
	PriceTypeFixed    PriceType = "FIXED"
	PriceTypeDiscount PriceType = "DISCOUNT"
	PriceTypeMarkup   PriceType = "MARKUP"
)

// TimeOfDay is a wall-clock time with minute precision, used for the
// time-of-day bounds of a validity window.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// sinceMidnight converts the bound to a duration for comparison against an
// instant's own clock reading.
func (t TimeOfDay) sinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

// clockOf extracts an instant's wall-clock offset from midnight, at full
// sub-second precision so an instant one microsecond past an upper bound
// already falls outside it.
func clockOf(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// ValidityWindow is the set of temporal constraints a rule may carry. Every
// field is optional; an unset field places no constraint.
type ValidityWindow struct {
	ValidFrom  *time.Time     `json:"validFrom,omitempty"`
	ValidUntil *time.Time     `json:"validUntil,omitempty"`
	TimeFrom   *TimeOfDay     `json:"timeFrom,omitempty"`
	TimeUntil  *TimeOfDay     `json:"timeUntil,omitempty"`
	DaysOfWeek []time.Weekday `json:"daysOfWeek,omitempty"`
}

// Contains reports whether the instant satisfies every configured constraint.
// Checks run in order and short-circuit on the first failure: date range
// (inclusive on both ends), time-of-day range (closed interval; a single
// bound leaves the other side open), then day-of-week membership.
func (w ValidityWindow) Contains(instant time.Time) bool {
	day := DateOnly(instant)
	if w.ValidFrom != nil && day.Before(DateOnly(*w.ValidFrom)) {
		return false
	}
	if w.ValidUntil != nil && day.After(DateOnly(*w.ValidUntil)) {
		return false
	}

	clock := clockOf(instant)
	if w.TimeFrom != nil && clock < w.TimeFrom.sinceMidnight() {
		return false
	}
	if w.TimeUntil != nil && clock > w.TimeUntil.sinceMidnight() {
		return false
	}

	if len(w.DaysOfWeek) > 0 {
		weekday := instant.Weekday()
		found := false
		for _, d := range w.DaysOfWeek {
			if d == weekday {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Specificity counts the configured constraints. Used as a tie-break between
// rules of equal priority: the more constrained window wins.
func (w ValidityWindow) Specificity() int {
	n := 0
	if w.ValidFrom != nil {
		n++
	}
	if w.ValidUntil != nil {
		n++
	}
	if w.TimeFrom != nil {
		n++
	}
	if w.TimeUntil != nil {
		n++
	}
	if len(w.DaysOfWeek) > 0 {
		n++
	}
	return n
}

// ScheduledPriceRule is a time-bounded pricing override attached to a single
// product. Amount is used for FIXED; DISCOUNT and MARKUP accept either an
// absolute amount or a percentage, with the percentage taking precedence
// when both are present.
type ScheduledPriceRule struct {
	RuleID     string           `json:"ruleID"`
	ProductID  string           `json:"productID"`
	PriceType  PriceType        `json:"priceType"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Currency   Currency         `json:"currency"`
	Window     ValidityWindow   `json:"window"`
	Priority   int              `json:"priority"`
	Active     bool             `json:"active"`
	AuditFields
}

// IsValidAt reports whether the rule applies at the instant: the active flag
// is checked first, then the validity window.
func (r *ScheduledPriceRule) IsValidAt(instant time.Time) bool {
	if !r.Active {
		return false
	}
	return r.Window.Contains(instant)
}
