package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/purchase"
	"github.com/nordvik/wardrobe/internal/snapshot"
)

// CartSession owns the in-memory cart for one browsing session: its line
// items, the current view mode, and the signed-in user reference. Every
// mutation synchronously writes a snapshot to the store so a process restart
// rehydrates the most recent consistent state.
//
// All operations are safe for concurrent use, but the session is designed
// around discrete user-initiated events processed one at a time. The only
// suspension point is Checkout's submission call.
type CartSession struct {
	id        string
	store     snapshot.Store
	submitter purchase.Submitter
	logger    *slog.Logger

	now func() time.Time

	mu              sync.Mutex
	items           domain.Cart
	viewMode        domain.ViewMode
	user            *domain.UserIdentity
	checkoutPending bool
}

// New creates a cart session, rehydrating cart and user identity from the
// snapshot store. A missing snapshot starts an empty cart; a corrupted one is
// discarded with a warning rather than propagated as a fatal error.
func New(ctx context.Context, id string, store snapshot.Store, submitter purchase.Submitter, logger *slog.Logger) *CartSession {
	s := &CartSession{
		id:        id,
		store:     store,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
		viewMode:  domain.ViewModeProducts,
	}

	s.restore(ctx)
	return s
}

// ID returns the session identifier.
func (s *CartSession) ID() string {
	return s.id
}

// AddItem adds a product to the cart, or increments its quantity when a line
// item for the product already exists. The product's price, name, category,
// and image are captured at add time; later catalog edits never reprice a
// cart. AddItem always succeeds.
func (s *CartSession) AddItem(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.items.Find(p.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, domain.LineItem{
			ProductID:  p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Category:   p.Category,
			ImageURL:   p.ImageURL,
			Quantity:   1,
		})
	}

	s.persistCartLocked(ctx)
}

// RemoveItem deletes the line item for productID. Removing an absent product
// is a no-op, not an error.
func (s *CartSession) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.items.Find(productID)
	if i < 0 {
		return
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistCartLocked(ctx)
}

// SetQuantity sets the quantity of the line item for productID. A quantity
// below 1 is equivalent to removal. Setting quantity on an absent product is
// a no-op.
func (s *CartSession) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.items.Find(productID)
	if i < 0 {
		return
	}

	s.items[i].Quantity = quantity
	s.persistCartLocked(ctx)
}

// Items returns a copy of the current line items in insertion order.
func (s *CartSession) Items() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Clone()
}

// ItemCount returns the sum of all line item quantities, recomputed on every
// call.
func (s *CartSession) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.ItemCount()
}

// TotalCents returns the cart total, recomputed from the captured line prices
// on every call.
func (s *CartSession) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.TotalCents()
}

// ViewMode returns the current view mode.
func (s *CartSession) ViewMode() domain.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewMode
}

// SetViewMode sets the view mode.
func (s *CartSession) SetViewMode(mode domain.ViewMode) error {
	if !mode.Valid() {
		return domain.Errorf(domain.EINVALID, "cart.set_view_mode", "invalid view mode: %s", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewMode = mode
	return nil
}

// User returns the signed-in user, or nil.
func (s *CartSession) User() *domain.UserIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignIn records the identity produced by the identity provider and persists
// it. The cart is unaffected.
func (s *CartSession) SignIn(ctx context.Context, user domain.UserIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.user = &u
	s.persistUserLocked(ctx)
}

// SignOut clears the signed-in user and removes the persisted identity.
// Signing out does not empty the cart; the two lifecycles are separate.
func (s *CartSession) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := s.store.Delete(ctx, userKey(s.id)); err != nil {
		s.logger.Warn("failed to delete user snapshot", "session_id", s.id, "error", err)
	}
}

// Checkout transitions the cart into a submitted purchase.
//
// Preconditions: a signed-in user (ErrUnauthenticated) and a non-empty cart
// (ErrEmptyCart). A second Checkout while one is in flight is rejected with
// ErrCheckoutPending without touching state.
//
// The cart is cleared exactly once, synchronously after the submitter
// confirms success. On any submission failure the cart and view mode are left
// unchanged so no cart contents are ever silently lost.
func (s *CartSession) Checkout(ctx context.Context) (*domain.PurchaseRecord, error) {
	s.mu.Lock()

	if s.checkoutPending {
		s.mu.Unlock()
		return nil, domain.ErrCheckoutPending
	}
	if s.user == nil {
		s.mu.Unlock()
		return nil, domain.ErrUnauthenticated
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}

	s.checkoutPending = true
	record := domain.NewPurchaseRecord(*s.user, s.items.Clone(), s.now().UTC())
	s.mu.Unlock()

	// The one suspension point: await the persistence collaborator. No
	// cancellation; the call runs to completion and we report its outcome.
	id, err := s.submitter.Submit(ctx, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkoutPending = false

	if err != nil {
		s.logger.Warn("purchase submission failed",
			"session_id", s.id,
			"user_id", record.UserID,
			"total_cents", record.TotalCents,
			"error", err,
		)
		return nil, domain.Unavailable(err, "cart.checkout", "Failed to process purchase. Please try again.")
	}

	record.ID = id
	s.items = nil
	s.viewMode = domain.ViewModeProducts
	s.persistCartLocked(ctx)

	s.logger.Info("checkout completed",
		"session_id", s.id,
		"purchase_id", id,
		"user_id", record.UserID,
		"items", len(record.Items),
		"total_cents", record.TotalCents,
	)

	return &record, nil
}

// =============================================================================
// SNAPSHOT PERSISTENCE
// =============================================================================

func cartKey(id string) string {
	return "carts/" + id + ".json"
}

func userKey(id string) string {
	return "users/" + id + ".json"
}

// persistCartLocked writes the cart snapshot. A write failure is logged and
// swallowed: the in-memory state stays authoritative for the rest of the
// process.
func (s *CartSession) persistCartLocked(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("failed to serialize cart snapshot", "session_id", s.id, "error", err)
		return
	}

	if err := s.store.Write(ctx, cartKey(s.id), data); err != nil {
		s.logger.Error("failed to write cart snapshot", "session_id", s.id, "error", err)
	}
}

func (s *CartSession) persistUserLocked(ctx context.Context) {
	data, err := json.Marshal(s.user)
	if err != nil {
		s.logger.Error("failed to serialize user snapshot", "session_id", s.id, "error", err)
		return
	}

	if err := s.store.Write(ctx, userKey(s.id), data); err != nil {
		s.logger.Error("failed to write user snapshot", "session_id", s.id, "error", err)
	}
}

// restore rehydrates cart and user identity from the snapshot store.
// Corrupted snapshots fall back to empty state.
func (s *CartSession) restore(ctx context.Context) {
	if data, err := s.store.Read(ctx, cartKey(s.id)); err == nil {
		var items domain.Cart
		if err := json.Unmarshal(data, &items); err != nil {
			s.logger.Warn("discarding corrupted cart snapshot", "session_id", s.id, "error", err)
		} else {
			s.items = items
		}
	} else if !errors.Is(err, snapshot.ErrNotFound) {
		s.logger.Warn("failed to read cart snapshot", "session_id", s.id, "error", err)
	}

	if data, err := s.store.Read(ctx, userKey(s.id)); err == nil {
		var user domain.UserIdentity
		if err := json.Unmarshal(data, &user); err != nil {
			s.logger.Warn("discarding corrupted user snapshot", "session_id", s.id, "error", err)
		} else if user.Email != "" {
			s.user = &user
		}
	} else if !errors.Is(err, snapshot.ErrNotFound) {
		s.logger.Warn("failed to read user snapshot", "session_id", s.id, "error", err)
	}
}
