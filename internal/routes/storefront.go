package routes

import (
	"github.com/nordvik/wardrobe/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing storefront routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog browsing
	r.Get("/products", deps.ProductHandler.List)
	r.Get("/products/{id}", deps.ProductHandler.Get)

	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/items", deps.CartHandler.Add)
	r.Post("/cart/items/update", deps.CartHandler.Update)
	r.Post("/cart/items/remove", deps.CartHandler.Remove)
	r.Post("/cart/view", deps.CartHandler.SetViewMode)

	// Checkout
	r.Post("/checkout", deps.CartHandler.Checkout)

	// Authentication
	r.Post("/auth/login", deps.AuthHandler.Login)
	r.Post("/auth/logout", deps.AuthHandler.Logout)
}
