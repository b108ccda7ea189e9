package domain

import (
	"context"
	"time"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Category is the fixed product category enumeration.
type Category string

const (
	CategoryTshirts  Category = "tshirts"
	CategoryJackets  Category = "jackets"
	CategoryTrousers Category = "trousers"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTshirts, CategoryJackets, CategoryTrousers:
		return true
	}
	return false
}

// Product represents a catalog product offering.
// Prices are stored in cents to avoid floating point money arithmetic.
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	PriceCents         int64    `json:"price"`
	OriginalPriceCents int64    `json:"originalPrice"`
	Discount           string   `json:"discount,omitempty"`
	ImageURL           string   `json:"image,omitempty"`
	Category           Category `json:"category"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// Validate checks product field invariants before create/update.
func (p *Product) Validate(op string) error {
	if p.Name == "" {
		return Invalid(op, "name is required")
	}
	if p.PriceCents < 0 {
		return Invalid(op, "price must be non-negative")
	}
	if p.OriginalPriceCents < p.PriceCents {
		return Invalid(op, "original price must be greater than or equal to price")
	}
	if !p.Category.Valid() {
		return Errorf(EINVALID, op, "invalid category: %s", p.Category)
	}
	return nil
}

// CreateProductParams contains the fields for creating a product.
type CreateProductParams struct {
	Name               string   `json:"name" validate:"required"`
	PriceCents         int64    `json:"price" validate:"gte=0"`
	OriginalPriceCents int64    `json:"originalPrice" validate:"gtefield=PriceCents"`
	Discount           string   `json:"discount"`
	ImageURL           string   `json:"image" validate:"omitempty,uri"`
	Category           Category `json:"category" validate:"required,oneof=tshirts jackets trousers"`
}

// UpdateProductParams contains the fields for updating a product.
// Nil pointers leave the existing value unchanged.
type UpdateProductParams struct {
	Name               *string   `json:"name" validate:"omitempty,min=1"`
	PriceCents         *int64    `json:"price" validate:"omitempty,gte=0"`
	OriginalPriceCents *int64    `json:"originalPrice"`
	Discount           *string   `json:"discount"`
	ImageURL           *string   `json:"image" validate:"omitempty,uri"`
	Category           *Category `json:"category" validate:"omitempty,oneof=tshirts jackets trousers"`
}

// CatalogService provides read and admin operations over the product catalog.
// CartSession only ever reads from it; the cart never mutates the catalog.
type CatalogService interface {
	// ListProducts returns all products, optionally filtered by category.
	// A nil category returns the full catalog.
	ListProducts(ctx context.Context, category *Category) ([]Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// CreateProduct adds a product to the catalog.
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)

	// UpdateProduct updates an existing product.
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*Product, error)

	// DeleteProduct removes a product from the catalog.
	// Carts holding a line item for the product are unaffected; the line
	// keeps its captured snapshot.
	DeleteProduct(ctx context.Context, id string) error
}
