package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/handler"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProductHandler handles catalog management routes.
type ProductHandler struct {
	catalog domain.CatalogService
}

// NewProductHandler creates a new admin product handler.
func NewProductHandler(catalog domain.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /admin/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), nil)
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

// Get handles GET /admin/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, product)
}

// Create handles POST /admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params domain.CreateProductParams
	if err := handler.Decode(r, &params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validateParams("product.create", params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), params)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, product)
}

// Update handles PUT /admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params domain.UpdateProductParams
	if err := handler.Decode(r, &params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validateParams("product.update", params); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), r.PathValue("id"), params)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, product)
}

// Delete handles DELETE /admin/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// validateParams runs struct validation and converts failures into EINVALID
// errors with field-level detail.
func validateParams(op string, params interface{}) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid(op, "invalid request")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return domain.Invalid(op, "validation failed: "+strings.Join(fields, ", "))
}
