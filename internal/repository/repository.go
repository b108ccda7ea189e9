// Package repository provides the Postgres data access layer. Queries are
// hand-written over a pgx connection pool; services depend on the Querier
// interface so tests can substitute mocks.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface consumed by services.
type Querier interface {
	// Products
	ListProducts(ctx context.Context) ([]Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Users
	UpsertUser(ctx context.Context, params UpsertUserParams) (User, error)

	// Purchases
	InsertPurchase(ctx context.Context, params InsertPurchaseParams) (string, error)
	ListPurchases(ctx context.Context, limit int32) ([]Purchase, error)
}

// Product is a catalog row.
type Product struct {
	ID                 string
	Name               string
	PriceCents         int64
	OriginalPriceCents int64
	Discount           string
	ImageURL           string
	Category           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateProductParams contains fields for inserting a product.
type CreateProductParams struct {
	ID                 string
	Name               string
	PriceCents         int64
	OriginalPriceCents int64
	Discount           string
	ImageURL           string
	Category           string
}

// UpdateProductParams contains fields for updating a product.
type UpdateProductParams struct {
	ID                 string
	Name               string
	PriceCents         int64
	OriginalPriceCents int64
	Discount           string
	ImageURL           string
	Category           string
}

// User is an identity row, keyed by email.
type User struct {
	Email     string
	Name      string
	PhotoURL  string
	CreatedAt time.Time
	LastLogin time.Time
}

// UpsertUserParams contains fields for recording a sign-in.
type UpsertUserParams struct {
	Email    string
	Name     string
	PhotoURL string
}

// Purchase is a completed checkout row. Items holds the purchased line items
// as JSON.
type Purchase struct {
	ID           string
	UserID       string
	UserName     string
	Items        []byte
	TotalCents   int64
	PurchaseDate time.Time
	Status       string
	CreatedAt    time.Time
}

// InsertPurchaseParams contains fields for storing a purchase record.
type InsertPurchaseParams struct {
	ID           string
	UserID       string
	UserName     string
	Items        []byte
	TotalCents   int64
	PurchaseDate time.Time
}

// Queries implements Querier against a pgx connection pool.
type Queries struct {
	pool *pgxpool.Pool
}

// New creates a Queries instance.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

var _ Querier = (*Queries)(nil)

// =============================================================================
// PRODUCTS
// =============================================================================

const productColumns = `id, name, price_cents, original_price_cents, discount, image_url, category, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.OriginalPriceCents, &p.Discount, &p.ImageURL, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListProducts returns the full catalog ordered by creation time.
func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListProductsByCategory returns the catalog filtered to one category.
func (q *Queries) ListProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	rows, err := q.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY created_at, id`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProductByID retrieves one product. Returns pgx.ErrNoRows when absent.
func (q *Queries) GetProductByID(ctx context.Context, id string) (Product, error) {
	row := q.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

// CreateProduct inserts a product and returns the stored row.
func (q *Queries) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, price_cents, original_price_cents, discount, image_url, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		params.ID, params.Name, params.PriceCents, params.OriginalPriceCents, params.Discount, params.ImageURL, params.Category,
	)
	return scanProduct(row)
}

// UpdateProduct updates a product and returns the stored row.
// Returns pgx.ErrNoRows when the product doesn't exist.
func (q *Queries) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	row := q.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, price_cents = $3, original_price_cents = $4, discount = $5, image_url = $6, category = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		params.ID, params.Name, params.PriceCents, params.OriginalPriceCents, params.Discount, params.ImageURL, params.Category,
	)
	return scanProduct(row)
}

// DeleteProduct removes a product. Deleting an absent product is a no-op.
func (q *Queries) DeleteProduct(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

// =============================================================================
// USERS
// =============================================================================

// UpsertUser inserts the user on first sign-in or refreshes name, photo, and
// last login on subsequent ones.
func (q *Queries) UpsertUser(ctx context.Context, params UpsertUserParams) (User, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, photo_url, last_login)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, photo_url = EXCLUDED.photo_url, last_login = now()
		RETURNING email, name, photo_url, created_at, last_login`,
		params.Email, params.Name, params.PhotoURL,
	)

	var u User
	err := row.Scan(&u.Email, &u.Name, &u.PhotoURL, &u.CreatedAt, &u.LastLogin)
	return u, err
}

// =============================================================================
// PURCHASES
// =============================================================================

// InsertPurchase stores a completed checkout and returns its ID.
func (q *Queries) InsertPurchase(ctx context.Context, params InsertPurchaseParams) (string, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO purchases (id, user_id, user_name, items, total_cents, purchase_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'completed')
		RETURNING id`,
		params.ID, params.UserID, params.UserName, params.Items, params.TotalCents, params.PurchaseDate,
	)

	var id string
	err := row.Scan(&id)
	return id, err
}

// ListPurchases returns the most recent purchases, newest first.
func (q *Queries) ListPurchases(ctx context.Context, limit int32) ([]Purchase, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, user_id, user_name, items, total_cents, purchase_date, status, created_at
		FROM purchases
		ORDER BY purchase_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []Purchase{}
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.UserName, &p.Items, &p.TotalCents, &p.PurchaseDate, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
