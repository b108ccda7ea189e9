package storefront

import (
	"net/http"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/handler"
)

// ProductHandler handles storefront catalog routes.
type ProductHandler struct {
	catalog domain.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog domain.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /products. An optional category query parameter filters
// the listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var category *domain.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c := domain.Category(raw)
		if !c.Valid() {
			handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "product.list", "invalid category: %s", raw))
			return
		}
		category = &c
	}

	products, err := h.catalog.ListProducts(r.Context(), category)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, product)
}
