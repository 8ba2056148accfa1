package repositories

import (
	"context"
	"time"

	"github.com/sahelpos/pricing_app/internal/core/domain"
)

// BundleReader defines read operations for product bundles.
type BundleReader interface {
	// FindBundleByID retrieves a bundle with its items and the sold count
	// for the given day.
	FindBundleByID(ctx context.Context, bundleID string, day time.Time) (*domain.ProductBundle, error)
}

// BundleWriter defines write operations for product bundles.
type BundleWriter interface {
	// SaveBundle persists a bundle and its items.
	SaveBundle(ctx context.Context, bundle domain.ProductBundle) error
}

// BundleSaleReserver isolates the daily sold-count mutation behind an atomic
// compare-and-increment, mirroring PromotionUsageReserver.
type BundleSaleReserver interface {
	// TryReserveBundleSale increments the day's sold count iff it is still
	// under the bundle's daily limit.
	TryReserveBundleSale(ctx context.Context, bundleID string, day time.Time) (bool, error)
}

// BundleRepositoryFacade combines all bundle repository interfaces.
type BundleRepositoryFacade interface {
	BundleReader
	BundleWriter
	BundleSaleReserver
}
