package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "shop_api/internal/domain/catalog"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, priority FROM categories ORDER BY priority, name;`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Priority); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	return categories, nil
}

// ListProducts returns the category name and its products joined with
// their supplier. An empty result means the category is unknown (or has
// no products, which the listing treats the same way).
func (r *CatalogRepository) ListProducts(ctx context.Context, categoryID string) (string, []domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.name, s.name, p.id, p.name, p.price, p.description, p.stock
		FROM categories c
		JOIN products p ON c.id = p.category
		JOIN suppliers s ON s.id = p.supplier
		WHERE p.category = $1
		ORDER BY p.name;
	`, categoryID)
	if err != nil {
		return "", nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var (
		categoryName string
		products     []domain.Product
	)
	for rows.Next() {
		var (
			p     domain.Product
			price string
		)
		if err := rows.Scan(&categoryName, &p.Supplier, &p.ID, &p.Name, &price, &p.Description, &p.Stock); err != nil {
			return "", nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return "", nil, fmt.Errorf("parse product price: %w", err)
		}
		p.CategoryID = categoryID
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("read products: %w", err)
	}
	if len(products) == 0 {
		return "", nil, domain.ErrCategoryNotFound
	}
	return categoryName, products, nil
}
