package routes

import (
	adminhandler "github.com/nordvik/wardrobe/internal/handler/admin"
	"github.com/nordvik/wardrobe/internal/router"
)

// RegisterAdminRoutes registers all catalog management and reporting routes.
// Every route requires the operator bearer token.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	admin := r.Group(adminhandler.RequireToken(deps.AdminToken))

	// Catalog management
	admin.Get("/admin/products", deps.ProductHandler.List)
	admin.Post("/admin/products", deps.ProductHandler.Create)
	admin.Get("/admin/products/{id}", deps.ProductHandler.Get)
	admin.Put("/admin/products/{id}", deps.ProductHandler.Update)
	admin.Delete("/admin/products/{id}", deps.ProductHandler.Delete)

	// Purchase history
	admin.Get("/admin/purchases", deps.PurchaseHandler.List)
}
