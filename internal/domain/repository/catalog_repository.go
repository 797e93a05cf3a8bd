package repository

import (
	"context"

	"shop_api/internal/domain/catalog"
)

// CatalogRepository is the read-only view of the product catalog.
type CatalogRepository interface {
	// ListCategories returns all categories ordered by priority, then name.
	ListCategories(ctx context.Context) ([]catalog.Category, error)

	// ListProducts returns the category name and its products ordered by
	// product name. Returns catalog.ErrCategoryNotFound for an unknown id.
	ListProducts(ctx context.Context, categoryID string) (string, []catalog.Product, error)
}
