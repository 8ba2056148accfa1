package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxBundleRepository implements the ports BundleRepositoryFacade interface
// using pgxpool. Items and per-currency prices live in child tables and
// cascade-delete with the bundle; daily sold counts live in a per-day counter
// table keyed by (bundle_id, sale_day).
type PgxBundleRepository struct {
	db *pgxpool.Pool
}

// NewBundleRepository creates a new PgxBundleRepository.
func NewBundleRepository(db *pgxpool.Pool) *PgxBundleRepository {
	return &PgxBundleRepository{db: db}
}

// FindBundleByID retrieves a bundle with its items, explicit prices and the
// sold count for the given day.
func (r *PgxBundleRepository) FindBundleByID(ctx context.Context, bundleID string, day time.Time) (*domain.ProductBundle, error) {
	query := `
		SELECT bundle_id, name, active, valid_from, valid_until,
			COALESCE(start_time, ''), COALESCE(end_time, ''),
			daily_limit, discount_percentage,
			created_at, created_by, last_updated_at, last_updated_by
		FROM product_bundles
		WHERE bundle_id = $1
	`
	bundle := &domain.ProductBundle{}
	err := r.db.QueryRow(ctx, query, bundleID).Scan(
		&bundle.BundleID, &bundle.Name, &bundle.Active, &bundle.ValidFrom, &bundle.ValidUntil,
		&bundle.StartTime, &bundle.EndTime,
		&bundle.DailyLimit, &bundle.DiscountPercentage,
		&bundle.CreatedAt, &bundle.CreatedBy, &bundle.LastUpdatedAt, &bundle.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bundle " + bundleID)
		}
		return nil, fmt.Errorf("error finding bundle: %w", err)
	}

	if bundle.Items, err = r.loadItems(ctx, bundleID); err != nil {
		return nil, err
	}
	if bundle.ExplicitPrices, err = r.loadPrices(ctx, bundleID); err != nil {
		return nil, err
	}

	soldQuery := `
		SELECT COALESCE(SUM(sold_count), 0)
		FROM bundle_daily_sales
		WHERE bundle_id = $1 AND sale_day = $2
	`
	if err := r.db.QueryRow(ctx, soldQuery, bundleID, domain.DateOnly(day)).Scan(&bundle.TodaySoldCount); err != nil {
		return nil, fmt.Errorf("error reading bundle sold count: %w", err)
	}
	return bundle, nil
}

// SaveBundle inserts a bundle with its items and explicit prices in a single
// transaction.
func (r *PgxBundleRepository) SaveBundle(ctx context.Context, bundle domain.ProductBundle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO product_bundles (
			bundle_id, name, active, valid_from, valid_until,
			start_time, end_time, daily_limit, discount_percentage,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.Exec(ctx, query,
		bundle.BundleID, bundle.Name, bundle.Active, bundle.ValidFrom, bundle.ValidUntil,
		bundle.StartTime, bundle.EndTime, bundle.DailyLimit, bundle.DiscountPercentage,
		bundle.CreatedAt, bundle.CreatedBy, bundle.LastUpdatedAt, bundle.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting bundle: %w", err)
	}

	for _, item := range bundle.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO bundle_items (bundle_item_id, bundle_id, product_id, quantity, optional, substitution_group)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
			item.BundleItemID, bundle.BundleID, item.ProductID, item.Quantity, item.Optional, item.SubstitutionGroup,
		); err != nil {
			return fmt.Errorf("error inserting bundle item: %w", err)
		}
	}
	for currency, price := range bundle.ExplicitPrices {
		if _, err := tx.Exec(ctx,
			`INSERT INTO bundle_prices (bundle_id, currency, price) VALUES ($1, $2, $3)`,
			bundle.BundleID, currency, price,
		); err != nil {
			return fmt.Errorf("error inserting bundle price: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing bundle: %w", err)
	}
	return nil
}

// TryReserveBundleSale atomically claims one sale of the bundle for the day.
// The guarded UPDATE only matches while the counter is under the daily limit;
// when no counter row exists yet the first sale inserts one. A daily limit of
// zero means unlimited.
func (r *PgxBundleRepository) TryReserveBundleSale(ctx context.Context, bundleID string, day time.Time) (bool, error) {
	saleDay := domain.DateOnly(day)

	updateQuery := `
		UPDATE bundle_daily_sales s
		SET sold_count = s.sold_count + 1
		FROM product_bundles b
		WHERE s.bundle_id = $1 AND s.sale_day = $2
			AND b.bundle_id = s.bundle_id
			AND (b.daily_limit = 0 OR s.sold_count < b.daily_limit)
	`
	tag, err := r.db.Exec(ctx, updateQuery, bundleID, saleDay)
	if err != nil {
		return false, fmt.Errorf("error reserving bundle sale: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	// Either no counter row exists for the day yet, or the limit is hit.
	insertQuery := `
		INSERT INTO bundle_daily_sales (bundle_id, sale_day, sold_count)
		SELECT $1, $2, 1 WHERE EXISTS (SELECT 1 FROM product_bundles WHERE bundle_id = $1)
		ON CONFLICT (bundle_id, sale_day) DO NOTHING
	`
	tag, err = r.db.Exec(ctx, insertQuery, bundleID, saleDay)
	if err != nil {
		return false, fmt.Errorf("error inserting bundle sale counter: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	// Lost an insert race with another first sale of the day; one more
	// guarded update settles it.
	tag, err = r.db.Exec(ctx, updateQuery, bundleID, saleDay)
	if err != nil {
		return false, fmt.Errorf("error reserving bundle sale: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxBundleRepository) loadItems(ctx context.Context, bundleID string) ([]domain.BundleItem, error) {
	query := `
		SELECT bundle_item_id, product_id, quantity, optional, COALESCE(substitution_group, '')
		FROM bundle_items
		WHERE bundle_id = $1
		ORDER BY bundle_item_id ASC
	`
	rows, err := r.db.Query(ctx, query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("error listing bundle items: %w", err)
	}
	defer rows.Close()

	var items []domain.BundleItem
	for rows.Next() {
		var item domain.BundleItem
		if err := rows.Scan(&item.BundleItemID, &item.ProductID, &item.Quantity, &item.Optional, &item.SubstitutionGroup); err != nil {
			return nil, fmt.Errorf("error scanning bundle item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading bundle items: %w", err)
	}
	return items, nil
}

func (r *PgxBundleRepository) loadPrices(ctx context.Context, bundleID string) (map[domain.Currency]decimal.Decimal, error) {
	query := `SELECT currency, price FROM bundle_prices WHERE bundle_id = $1`
	rows, err := r.db.Query(ctx, query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("error listing bundle prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[domain.Currency]decimal.Decimal)
	for rows.Next() {
		var (
			currency domain.Currency
			price    decimal.Decimal
		)
		if err := rows.Scan(&currency, &price); err != nil {
			return nil, fmt.Errorf("error scanning bundle price: %w", err)
		}
		prices[currency] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading bundle prices: %w", err)
	}
	if len(prices) == 0 {
		return nil, nil
	}
	return prices, nil
}
