package catalog

import (
	"context"

	domain "shop_api/internal/domain/catalog"
	"shop_api/internal/domain/repository"
)

// Service exposes the read-only catalog views backing the category and
// product listings. Catalog mutation is out of scope here.
type Service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// ListProducts returns the category name and its products, ordered by
// product name.
func (s *Service) ListProducts(ctx context.Context, categoryID string) (string, []domain.Product, error) {
	return s.repo.ListProducts(ctx, categoryID)
}
