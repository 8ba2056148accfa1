package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahelpos/pricing_app/internal/apperrors"
	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProductRepository implements the ports ProductReader interface using
// pgxpool. The products table belongs to the wider back-office catalog;
// pricing only ever reads from it.
type PgxProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new PgxProductRepository.
func NewProductRepository(db *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{db: db}
}

// FindProductByID retrieves a product with its stored base price.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, name, category_id, base_price, currency, active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1
	`
	product := &domain.Product{}
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&product.ProductID, &product.Name, &product.CategoryID, &product.BasePrice, &product.Currency, &product.Active,
		&product.CreatedAt, &product.CreatedBy, &product.LastUpdatedAt, &product.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product " + productID)
		}
		return nil, fmt.Errorf("error finding product: %w", err)
	}
	return product, nil
}
