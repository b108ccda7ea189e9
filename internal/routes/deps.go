package routes

import (
	"github.com/nordvik/wardrobe/internal/handler/admin"
	"github.com/nordvik/wardrobe/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for storefront routes.
type StorefrontDeps struct {
	// Catalog browsing
	ProductHandler *storefront.ProductHandler

	// Cart and checkout
	CartHandler *storefront.CartHandler

	// Sign-in and sign-out
	AuthHandler *storefront.AuthHandler
}

// AdminDeps contains dependencies for admin routes.
type AdminDeps struct {
	// Catalog management
	ProductHandler *admin.ProductHandler

	// Purchase history
	PurchaseHandler *admin.PurchaseHandler

	// AdminToken is the bearer token protecting every admin route.
	AdminToken string
}
