package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/nordvik/wardrobe/internal/repository"
)

// mockQuerier implements repository.Querier for testing.
type mockQuerier struct {
	listProductsFunc           func(ctx context.Context) ([]repository.Product, error)
	listProductsByCategoryFunc func(ctx context.Context, category string) ([]repository.Product, error)
	getProductByIDFunc         func(ctx context.Context, id string) (repository.Product, error)
	createProductFunc          func(ctx context.Context, params repository.CreateProductParams) (repository.Product, error)
	updateProductFunc          func(ctx context.Context, params repository.UpdateProductParams) (repository.Product, error)
	deleteProductFunc          func(ctx context.Context, id string) error
	upsertUserFunc             func(ctx context.Context, params repository.UpsertUserParams) (repository.User, error)
	insertPurchaseFunc         func(ctx context.Context, params repository.InsertPurchaseParams) (string, error)
	listPurchasesFunc          func(ctx context.Context, limit int32) ([]repository.Purchase, error)
}

var _ repository.Querier = (*mockQuerier)(nil)

func (m *mockQuerier) ListProducts(ctx context.Context) ([]repository.Product, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx)
	}
	return nil, nil
}

func (m *mockQuerier) ListProductsByCategory(ctx context.Context, category string) ([]repository.Product, error) {
	if m.listProductsByCategoryFunc != nil {
		return m.listProductsByCategoryFunc(ctx, category)
	}
	return nil, nil
}

func (m *mockQuerier) GetProductByID(ctx context.Context, id string) (repository.Product, error) {
	if m.getProductByIDFunc != nil {
		return m.getProductByIDFunc(ctx, id)
	}
	return repository.Product{}, pgx.ErrNoRows
}

func (m *mockQuerier) CreateProduct(ctx context.Context, params repository.CreateProductParams) (repository.Product, error) {
	if m.createProductFunc != nil {
		return m.createProductFunc(ctx, params)
	}
	return repository.Product{
		ID:                 params.ID,
		Name:               params.Name,
		PriceCents:         params.PriceCents,
		OriginalPriceCents: params.OriginalPriceCents,
		Discount:           params.Discount,
		ImageURL:           params.ImageURL,
		Category:           params.Category,
	}, nil
}

func (m *mockQuerier) UpdateProduct(ctx context.Context, params repository.UpdateProductParams) (repository.Product, error) {
	if m.updateProductFunc != nil {
		return m.updateProductFunc(ctx, params)
	}
	return repository.Product{
		ID:                 params.ID,
		Name:               params.Name,
		PriceCents:         params.PriceCents,
		OriginalPriceCents: params.OriginalPriceCents,
		Discount:           params.Discount,
		ImageURL:           params.ImageURL,
		Category:           params.Category,
	}, nil
}

func (m *mockQuerier) DeleteProduct(ctx context.Context, id string) error {
	if m.deleteProductFunc != nil {
		return m.deleteProductFunc(ctx, id)
	}
	return nil
}

func (m *mockQuerier) UpsertUser(ctx context.Context, params repository.UpsertUserParams) (repository.User, error) {
	if m.upsertUserFunc != nil {
		return m.upsertUserFunc(ctx, params)
	}
	return repository.User{Email: params.Email, Name: params.Name, PhotoURL: params.PhotoURL}, nil
}

func (m *mockQuerier) InsertPurchase(ctx context.Context, params repository.InsertPurchaseParams) (string, error) {
	if m.insertPurchaseFunc != nil {
		return m.insertPurchaseFunc(ctx, params)
	}
	return params.ID, nil
}

func (m *mockQuerier) ListPurchases(ctx context.Context, limit int32) ([]repository.Purchase, error) {
	if m.listPurchasesFunc != nil {
		return m.listPurchasesFunc(ctx, limit)
	}
	return nil, nil
}
