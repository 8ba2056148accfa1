package services

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
)

// PricingSvcFacade is the single entry point callers use to answer "what is
// the price of X, in currency C, at instant T". Every method is a pure query
// over the current rule/rate state.
type PricingSvcFacade interface {
	// ResolveProductPrice resolves the product's scheduled price in its
	// native currency and converts it to the requested currency. Used for
	// catalog display, where promotions are shown separately.
	ResolveProductPrice(ctx context.Context, productID string, currency domain.Currency, at time.Time) (domain.Money, error)

	// ResolveCartLinePrice is ResolveProductPrice with live promotions
	// folded in, for an actual cart line.
	ResolveCartLinePrice(ctx context.Context, productID string, currency domain.Currency, at time.Time) (domain.Money, []domain.AppliedPromotion, error)

	// ResolveBundlePrice delegates to the bundle composer. Bundles do not
	// stack with line-item promotions.
	ResolveBundlePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error)

	// BundleSavings returns separate price minus bundle price, for UI.
	BundleSavings(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error)
}
