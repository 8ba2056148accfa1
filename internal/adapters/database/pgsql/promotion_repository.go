package pgsql

import (
	"context"
	"fmt"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPromotionRepository implements the ports PromotionRepositoryFacade
// interface using pgxpool. Product and category applicability lives in join
// tables and is aggregated back into the domain entity on read.
type PgxPromotionRepository struct {
	db *pgxpool.Pool
}

// NewPromotionRepository creates a new PgxPromotionRepository.
func NewPromotionRepository(db *pgxpool.Pool) *PgxPromotionRepository {
	return &PgxPromotionRepository{db: db}
}

const promotionColumns = `
	p.promotion_id, p.code, p.name, p.discount_type, p.discount_value,
	p.minimum_purchase_amount, p.maximum_discount_amount,
	p.start_date, p.end_date, p.stackable, p.apply_to_all_products,
	p.usage_limit, p.usage_count, p.active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
	COALESCE(array_agg(DISTINCT pp.product_id) FILTER (WHERE pp.product_id IS NOT NULL), '{}'),
	COALESCE(array_agg(DISTINCT pc.category_id) FILTER (WHERE pc.category_id IS NOT NULL), '{}')
`

// SavePromotion inserts a promotion together with its applicability rows in a
// single transaction.
func (r *PgxPromotionRepository) SavePromotion(ctx context.Context, promo domain.Promotion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO promotions (
			promotion_id, code, name, discount_type, discount_value,
			minimum_purchase_amount, maximum_discount_amount,
			start_date, end_date, stackable, apply_to_all_products,
			usage_limit, usage_count, active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = tx.Exec(ctx, query,
		promo.PromotionID, promo.Code, promo.Name, promo.DiscountType, promo.DiscountValue,
		promo.MinimumPurchaseAmount, promo.MaximumDiscountAmount,
		promo.StartDate, promo.EndDate, promo.Stackable, promo.ApplyToAllProducts,
		promo.UsageLimit, promo.UsageCount, promo.Active,
		promo.CreatedAt, promo.CreatedBy, promo.LastUpdatedAt, promo.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting promotion: %w", err)
	}

	for _, productID := range promo.ProductIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO promotion_products (promotion_id, product_id) VALUES ($1, $2)`,
			promo.PromotionID, productID,
		); err != nil {
			return fmt.Errorf("error inserting promotion product link: %w", err)
		}
	}
	for _, categoryID := range promo.CategoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO promotion_categories (promotion_id, category_id) VALUES ($1, $2)`,
			promo.PromotionID, categoryID,
		); err != nil {
			return fmt.Errorf("error inserting promotion category link: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing promotion: %w", err)
	}
	return nil
}

// ListPromotionsFor retrieves promotions that could cover the product or its
// category, including apply-to-all promotions, ordered by promotion ID. Live
// status and usage caps are evaluated by the resolver, not here.
func (r *PgxPromotionRepository) ListPromotionsFor(ctx context.Context, productID, categoryID string) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions p
		LEFT JOIN promotion_products pp ON pp.promotion_id = p.promotion_id
		LEFT JOIN promotion_categories pc ON pc.promotion_id = p.promotion_id
		WHERE p.apply_to_all_products
			OR EXISTS (
				SELECT 1 FROM promotion_products x
				WHERE x.promotion_id = p.promotion_id AND x.product_id = $1
			)
			OR EXISTS (
				SELECT 1 FROM promotion_categories x
				WHERE x.promotion_id = p.promotion_id AND x.category_id = $2
			)
		GROUP BY p.promotion_id
		ORDER BY p.promotion_id ASC
	`
	return r.queryPromotions(ctx, query, productID, categoryID)
}

// ListActivePromotions retrieves every promotion currently inside its date
// range with the active flag set, ordered by promotion ID.
func (r *PgxPromotionRepository) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions p
		LEFT JOIN promotion_products pp ON pp.promotion_id = p.promotion_id
		LEFT JOIN promotion_categories pc ON pc.promotion_id = p.promotion_id
		WHERE p.active AND p.start_date <= NOW() AND p.end_date >= NOW()
		GROUP BY p.promotion_id
		ORDER BY p.promotion_id ASC
	`
	return r.queryPromotions(ctx, query)
}

// TryReservePromotionUsage atomically claims one use of the promotion. The
// guarded UPDATE only matches while the usage count is below the limit, so
// concurrent redemptions can never overshoot it.
func (r *PgxPromotionRepository) TryReservePromotionUsage(ctx context.Context, promotionID string) (bool, error) {
	query := `
		UPDATE promotions
		SET usage_count = usage_count + 1, last_updated_at = NOW()
		WHERE promotion_id = $1
			AND active
			AND (usage_limit IS NULL OR usage_count < usage_limit)
	`
	tag, err := r.db.Exec(ctx, query, promotionID)
	if err != nil {
		return false, fmt.Errorf("error reserving promotion usage: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxPromotionRepository) queryPromotions(ctx context.Context, query string, args ...any) ([]domain.Promotion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing promotions: %w", err)
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		var promo domain.Promotion
		if err := rows.Scan(
			&promo.PromotionID, &promo.Code, &promo.Name, &promo.DiscountType, &promo.DiscountValue,
			&promo.MinimumPurchaseAmount, &promo.MaximumDiscountAmount,
			&promo.StartDate, &promo.EndDate, &promo.Stackable, &promo.ApplyToAllProducts,
			&promo.UsageLimit, &promo.UsageCount, &promo.Active,
			&promo.CreatedAt, &promo.CreatedBy, &promo.LastUpdatedAt, &promo.LastUpdatedBy,
			&promo.ProductIDs, &promo.CategoryIDs,
		); err != nil {
			return nil, fmt.Errorf("error scanning promotion: %w", err)
		}
		promos = append(promos, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading promotions: %w", err)
	}
	return promos, nil
}
