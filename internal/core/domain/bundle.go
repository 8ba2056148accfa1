package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnavailabilityReason explains why a bundle cannot be sold right now. The
// values are stable identifiers surfaced to the UI layer for messaging.
type UnavailabilityReason string

const (
	ReasonInactive          UnavailabilityReason = "inactive"
	ReasonOutOfDateRange    UnavailabilityReason = "out-of-date-range"
	ReasonOutsideTimeWindow UnavailabilityReason = "outside-time-window"
	ReasonDailyLimitReached UnavailabilityReason = "daily-limit-reached"
)

// BundleItem is one constituent of a bundle. Optional and substitution-group
// flags describe composition only; they carry no pricing effect.
type BundleItem struct {
	BundleItemID      string `json:"bundleItemID"`
	ProductID         string `json:"productID"`
	Quantity          int64  `json:"quantity"`
	Optional          bool   `json:"optional"`
	SubstitutionGroup string `json:"substitutionGroup,omitempty"`
}

// ProductBundle is a composite, fixed-composition product priced either by an
// explicit per-currency price or by discounting the sum of its parts. Items
// are owned by the bundle and cascade-deleted with it.
type ProductBundle struct {
	BundleID           string                       `json:"bundleID"`
	Name               string                       `json:"name"`
	Active             bool                         `json:"active"`
	ValidFrom          *time.Time                   `json:"validFrom,omitempty"`
	ValidUntil         *time.Time                   `json:"validUntil,omitempty"`
	StartTime          string                       `json:"startTime,omitempty"` // "HH:mm"
	EndTime            string                       `json:"endTime,omitempty"`   // "HH:mm"
	DailyLimit         int64                        `json:"dailyLimit"` // 0 = unlimited
	TodaySoldCount     int64                        `json:"todaySoldCount"`
	DiscountPercentage decimal.Decimal              `json:"discountPercentage"`
	ExplicitPrices     map[Currency]decimal.Decimal `json:"explicitPrices,omitempty"`
	Items              []BundleItem                 `json:"items"`
	AuditFields
}

// AvailabilityAt evaluates bundle-level validity in the fixed short-circuit
// order: active flag, date range, time-of-day window, daily limit. The first
// failing check decides the reason.
func (b *ProductBundle) AvailabilityAt(instant time.Time) (bool, UnavailabilityReason) {
	if !b.Active {
		return false, ReasonInactive
	}

	day := DateOnly(instant)
	if b.ValidFrom != nil && day.Before(DateOnly(*b.ValidFrom)) {
		return false, ReasonOutOfDateRange
	}
	if b.ValidUntil != nil && day.After(DateOnly(*b.ValidUntil)) {
		return false, ReasonOutOfDateRange
	}

	// Wall-clock window compared as "HH:mm" strings, matching how the
	// bounds are stored.
	if b.StartTime != "" && b.EndTime != "" {
		clock := instant.Format("15:04")
		if clock < b.StartTime || clock > b.EndTime {
			return false, ReasonOutsideTimeWindow
		}
	}

	if b.DailyLimit > 0 && b.TodaySoldCount >= b.DailyLimit {
		return false, ReasonDailyLimitReached
	}
	return true, ""
}

// ExplicitPriceIn returns the configured bundle price for the currency, if
// one exists.
func (b *ProductBundle) ExplicitPriceIn(currency Currency) (decimal.Decimal, bool) {
	if b.ExplicitPrices == nil {
		return decimal.Decimal{}, false
	}
	price, ok := b.ExplicitPrices[currency]
	return price, ok
}
