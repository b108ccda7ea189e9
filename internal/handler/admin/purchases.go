package admin

import (
	"net/http"
	"strconv"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/handler"
	"github.com/nordvik/wardrobe/internal/postgres"
)

// PurchaseHandler handles purchase history reporting routes.
type PurchaseHandler struct {
	store *postgres.PurchaseStore
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(store *postgres.PurchaseStore) *PurchaseHandler {
	return &PurchaseHandler{store: store}
}

// List handles GET /admin/purchases. An optional limit query parameter caps
// the number of records returned, newest first.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 {
			handler.ErrorResponse(w, r, domain.Invalid("purchase.list", "limit must be a positive integer"))
			return
		}
		limit = int32(n)
	}

	purchases, err := h.store.ListPurchases(r.Context(), limit)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if purchases == nil {
		purchases = []domain.PurchaseRecord{}
	}

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"purchases": purchases,
	})
}
