package services

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/sahelpos/pricing_app/internal/dto"
)

// BundleResolverSvc prices bundles.
type BundleResolverSvc interface {
	// ResolveBundlePrice returns the bundle's price in the currency, or a
	// BundleUnavailableError carrying the reason when bundle-level
	// validity fails.
	ResolveBundlePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error)

	// CalculateSeparatePrice sums the resolved item prices without the
	// bundle discount, for "savings" display.
	CalculateSeparatePrice(ctx context.Context, bundleID string, currency domain.Currency, at time.Time) (domain.Money, error)
}

// BundleAdminSvc defines the administrative operations on bundles.
type BundleAdminSvc interface {
	// CreateBundle persists a bundle and its items.
	CreateBundle(ctx context.Context, req dto.CreateBundleRequest, creatorUserID string) (*domain.ProductBundle, error)

	// GetBundle retrieves a bundle with its items and today's sold count.
	GetBundle(ctx context.Context, bundleID string, at time.Time) (*domain.ProductBundle, error)
}

// BundleSaleSvc reserves bundle sales against the daily limit at sale
// completion.
type BundleSaleSvc interface {
	// ReserveBundleSale atomically claims one sale of the bundle for the
	// day, reporting false when the daily limit is exhausted.
	ReserveBundleSale(ctx context.Context, bundleID string, day time.Time) (bool, error)
}

// BundleSvcFacade combines all bundle service interfaces.
type BundleSvcFacade interface {
	BundleResolverSvc
	BundleAdminSvc
	BundleSaleSvc
}
