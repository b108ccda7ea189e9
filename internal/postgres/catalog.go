package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/repository"
)

// CatalogService implements domain.CatalogService using PostgreSQL.
type CatalogService struct {
	repo repository.Querier
}

// Compile-time check that CatalogService implements domain.CatalogService.
var _ domain.CatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new PostgreSQL-backed catalog service.
func NewCatalogService(repo repository.Querier) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListProducts returns all products, optionally filtered by category.
func (s *CatalogService) ListProducts(ctx context.Context, category *domain.Category) ([]domain.Product, error) {
	var (
		rows []repository.Product
		err  error
	)

	if category != nil {
		if !category.Valid() {
			return nil, domain.Errorf(domain.EINVALID, "catalog.list", "invalid category: %s", *category)
		}
		rows, err = s.repo.ListProductsByCategory(ctx, string(*category))
	} else {
		rows, err = s.repo.ListProducts(ctx)
	}
	if err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to list products")
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = mapRepoProductToDomain(row)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get", "failed to get product")
	}

	p := mapRepoProductToDomain(row)
	return &p, nil
}

// CreateProduct adds a product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	p := domain.Product{
		ID:                 uuid.New().String(),
		Name:               params.Name,
		PriceCents:         params.PriceCents,
		OriginalPriceCents: params.OriginalPriceCents,
		Discount:           params.Discount,
		ImageURL:           params.ImageURL,
		Category:           params.Category,
	}
	if p.OriginalPriceCents == 0 {
		p.OriginalPriceCents = p.PriceCents
	}
	if err := p.Validate("catalog.create"); err != nil {
		return nil, err
	}

	row, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		ID:                 p.ID,
		Name:               p.Name,
		PriceCents:         p.PriceCents,
		OriginalPriceCents: p.OriginalPriceCents,
		Discount:           p.Discount,
		ImageURL:           p.ImageURL,
		Category:           string(p.Category),
	})
	if err != nil {
		return nil, domain.Internal(err, "catalog.create", "failed to create product")
	}

	created := mapRepoProductToDomain(row)
	return &created, nil
}

// UpdateProduct updates an existing product. Nil params leave the existing
// value unchanged.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, params domain.UpdateProductParams) (*domain.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if params.Name != nil {
		merged.Name = *params.Name
	}
	if params.PriceCents != nil {
		merged.PriceCents = *params.PriceCents
	}
	if params.OriginalPriceCents != nil {
		merged.OriginalPriceCents = *params.OriginalPriceCents
	}
	if params.Discount != nil {
		merged.Discount = *params.Discount
	}
	if params.ImageURL != nil {
		merged.ImageURL = *params.ImageURL
	}
	if params.Category != nil {
		merged.Category = *params.Category
	}
	if err := merged.Validate("catalog.update"); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:                 id,
		Name:               merged.Name,
		PriceCents:         merged.PriceCents,
		OriginalPriceCents: merged.OriginalPriceCents,
		Discount:           merged.Discount,
		ImageURL:           merged.ImageURL,
		Category:           string(merged.Category),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.update", "failed to update product")
	}

	updated := mapRepoProductToDomain(row)
	return &updated, nil
}

// DeleteProduct removes a product from the catalog. Carts holding the product
// keep their captured line item snapshot.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return domain.Internal(err, "catalog.delete", "failed to delete product")
	}
	return nil
}

func mapRepoProductToDomain(p repository.Product) domain.Product {
	return domain.Product{
		ID:                 p.ID,
		Name:               p.Name,
		PriceCents:         p.PriceCents,
		OriginalPriceCents: p.OriginalPriceCents,
		Discount:           p.Discount,
		ImageURL:           p.ImageURL,
		Category:           domain.Category(p.Category),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
