package storefront

import (
	"log/slog"
	"net/http"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/events"
	"github.com/nordvik/wardrobe/internal/handler"
	"github.com/nordvik/wardrobe/internal/session"
	"github.com/nordvik/wardrobe/internal/telemetry"
)

// CartHandler handles all cart-related storefront routes.
type CartHandler struct {
	sessions *session.Manager
	catalog  domain.CatalogService
	events   events.Publisher
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
	secure   bool
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(sessions *session.Manager, catalog domain.CatalogService, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger, secure bool) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalog,
		events:   publisher,
		metrics:  metrics,
		logger:   logger,
		secure:   secure,
	}
}

// cartState is the JSON shape returned by every cart endpoint, mirroring the
// state the storefront client renders from.
type cartState struct {
	Items     domain.Cart          `json:"items"`
	ItemCount int                  `json:"itemCount"`
	Total     int64                `json:"total"`
	ViewMode  domain.ViewMode      `json:"viewMode"`
	User      *domain.UserIdentity `json:"user,omitempty"`
}

func stateOf(s *session.CartSession) cartState {
	items := s.Items()
	if items == nil {
		items = domain.Cart{}
	}
	return cartState{
		Items:     items,
		ItemCount: items.ItemCount(),
		Total:     items.TotalCents(),
		ViewMode:  s.ViewMode(),
		User:      s.User(),
	}
}

// getSession resolves the browsing session from the request cookie, creating
// a new session (and setting the cookie) when none exists yet.
func (h *CartHandler) getSession(w http.ResponseWriter, r *http.Request) (*session.CartSession, error) {
	sessionID := GetSessionIDFromCookie(r)

	s, id, err := h.sessions.GetOrCreate(r.Context(), sessionID)
	if err != nil {
		return nil, domain.Internal(err, "cart.session", "failed to create session")
	}

	if id != sessionID {
		SetSessionCookie(w, id, h.secure)
	}
	return s, nil
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, stateOf(s))
}

// Add handles POST /cart/items.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.ProductID == "" {
		handler.ErrorResponse(w, r, domain.Invalid("cart.add", "productId is required"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	s, err := h.getSession(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	s.AddItem(r.Context(), *product)

	h.metrics.CartItemsAdded.WithLabelValues(string(product.Category)).Inc()
	h.metrics.CartValue.Observe(float64(s.TotalCents()))

	handler.JSON(w, http.StatusOK, stateOf(s))
}

// Update handles POST /cart/items/update.
// A quantity below 1 removes the line item.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.ProductID == "" {
		handler.ErrorResponse(w, r, domain.Invalid("cart.update", "productId is required"))
		return
	}

	s, err := h.getSession(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	s.SetQuantity(r.Context(), req.ProductID, req.Quantity)

	h.metrics.CartUpdated.Inc()
	h.metrics.CartValue.Observe(float64(s.TotalCents()))

	handler.JSON(w, http.StatusOK, stateOf(s))
}

// Remove handles POST /cart/items/remove.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.ProductID == "" {
		handler.ErrorResponse(w, r, domain.Invalid("cart.remove", "productId is required"))
		return
	}

	s, err := h.getSession(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	s.RemoveItem(r.Context(), req.ProductID)

	h.metrics.CartItemsRemoved.Inc()
	h.metrics.CartValue.Observe(float64(s.TotalCents()))

	handler.JSON(w, http.StatusOK, stateOf(s))
}

// SetViewMode handles POST /cart/view.
func (h *CartHandler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ViewMode domain.ViewMode `json:"viewMode"`
	}
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	s, err := h.getSession(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := s.SetViewMode(req.ViewMode); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, stateOf(s))
}

// Checkout handles POST /checkout.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, err := h.getSession(w, r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.metrics.CheckoutStarted.Inc()

	record, err := s.Checkout(r.Context())
	if err != nil {
		h.metrics.CheckoutRejected.WithLabelValues(domain.ErrorCode(err)).Inc()
		handler.ErrorResponse(w, r, err)
		return
	}

	h.metrics.CheckoutCompleted.Inc()
	h.metrics.PurchaseValue.Observe(float64(record.TotalCents))
	h.metrics.PurchaseItemCount.Observe(float64(len(record.Items)))

	// Best-effort event publication; the purchase is already durable.
	if err := h.events.PurchaseSubmitted(r.Context(), *record); err != nil {
		h.logger.Warn("failed to publish purchase event",
			"purchase_id", record.ID,
			"error", err,
		)
	}

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"purchase": record,
		"cart":     stateOf(s),
	})
}
