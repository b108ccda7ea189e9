package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/purchase"
	"github.com/nordvik/wardrobe/internal/snapshot"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testProduct(id string, priceCents int64) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       "Product " + id,
		PriceCents: priceCents,
		Category:   domain.CategoryTshirts,
	}
}

func signedInSession(t *testing.T, store snapshot.Store, submitter purchase.Submitter) *CartSession {
	t.Helper()

	s := New(context.Background(), "sess-1", store, submitter, testLogger)
	s.SignIn(context.Background(), domain.UserIdentity{Email: "jo@example.com", Name: "Jo"})
	return s
}

func TestAddItem_MergesRepeatedAdds(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)

	p := testProduct("p1", 2500)
	s.AddItem(ctx, p)
	s.AddItem(ctx, p)
	s.AddItem(ctx, p)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", items[0].Quantity)
	}
	if s.ItemCount() != 3 {
		t.Errorf("ItemCount() = %d, want 3", s.ItemCount())
	}
}

func TestAddItem_CapturesPriceAtAddTime(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)

	p := testProduct("p1", 2500)
	s.AddItem(ctx, p)

	// Catalog edits after the add must not reprice the cart.
	p.PriceCents = 9900
	p.Name = "Renamed"

	items := s.Items()
	if items[0].PriceCents != 2500 {
		t.Errorf("PriceCents = %d, want 2500", items[0].PriceCents)
	}
	if items[0].Name != "Product p1" {
		t.Errorf("Name = %q, want %q", items[0].Name, "Product p1")
	}
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)

	s.AddItem(ctx, testProduct("p1", 100))
	s.AddItem(ctx, testProduct("p2", 200))
	s.AddItem(ctx, testProduct("p1", 100))
	s.AddItem(ctx, testProduct("p3", 300))

	items := s.Items()
	want := []string{"p1", "p2", "p3"}
	if len(items) != len(want) {
		t.Fatalf("expected %d line items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ProductID != id {
			t.Errorf("items[%d].ProductID = %q, want %q", i, items[i].ProductID, id)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name         string
		productID    string
		quantity     int
		wantItems    int
		wantQuantity int
	}{
		{name: "update quantity", productID: "p1", quantity: 5, wantItems: 1, wantQuantity: 5},
		{name: "zero removes item", productID: "p1", quantity: 0, wantItems: 0},
		{name: "negative removes item", productID: "p1", quantity: -2, wantItems: 0},
		{name: "absent product is a no-op", productID: "missing", quantity: 3, wantItems: 1, wantQuantity: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)
			s.AddItem(ctx, testProduct("p1", 1000))

			s.SetQuantity(ctx, tt.productID, tt.quantity)

			items := s.Items()
			if len(items) != tt.wantItems {
				t.Fatalf("expected %d line items, got %d", tt.wantItems, len(items))
			}
			if tt.wantItems > 0 && items[0].Quantity != tt.wantQuantity {
				t.Errorf("quantity = %d, want %d", items[0].Quantity, tt.wantQuantity)
			}
		})
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)
	s.AddItem(ctx, testProduct("p1", 1000))

	s.RemoveItem(ctx, "missing")

	if len(s.Items()) != 1 {
		t.Errorf("expected cart untouched, got %d items", len(s.Items()))
	}
}

func TestTotalCents_RecomputedFromLines(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)

	s.AddItem(ctx, testProduct("p1", 2500))
	s.AddItem(ctx, testProduct("p1", 2500))
	s.AddItem(ctx, testProduct("p2", 1000))
	s.SetQuantity(ctx, "p2", 4)

	if got := s.TotalCents(); got != 2*2500+4*1000 {
		t.Errorf("TotalCents() = %d, want %d", got, 2*2500+4*1000)
	}
}

func TestSetViewMode(t *testing.T) {
	s := New(context.Background(), "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)

	if got := s.ViewMode(); got != domain.ViewModeProducts {
		t.Errorf("initial view mode = %q, want %q", got, domain.ViewModeProducts)
	}

	if err := s.SetViewMode(domain.ViewModeCart); err != nil {
		t.Fatalf("SetViewMode(cart) failed: %v", err)
	}
	if got := s.ViewMode(); got != domain.ViewModeCart {
		t.Errorf("view mode = %q, want %q", got, domain.ViewModeCart)
	}

	err := s.SetViewMode("orders")
	if domain.ErrorCode(err) != domain.EINVALID {
		t.Errorf("SetViewMode(orders) error code = %q, want %q", domain.ErrorCode(err), domain.EINVALID)
	}
}

func TestCheckout_RequiresSignIn(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, "sess-1", snapshot.NewMemoryStore(), purchase.NewMockSubmitter(), testLogger)
	s.AddItem(ctx, testProduct("p1", 1000))

	_, err := s.Checkout(ctx)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Checkout() error = %v, want ErrUnauthenticated", err)
	}
	if len(s.Items()) != 1 {
		t.Errorf("cart should be untouched after rejected checkout")
	}
}

func TestCheckout_RequiresNonEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := signedInSession(t, snapshot.NewMemoryStore(), purchase.NewMockSubmitter())

	_, err := s.Checkout(ctx)
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Errorf("Checkout() error = %v, want ErrEmptyCart", err)
	}
}

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	submitter := purchase.NewMockSubmitter()
	s := signedInSession(t, snapshot.NewMemoryStore(), submitter)

	s.AddItem(ctx, testProduct("p1", 2500))
	s.AddItem(ctx, testProduct("p1", 2500))
	s.AddItem(ctx, testProduct("p2", 1000))
	s.SetViewMode(domain.ViewModeCart)

	record, err := s.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout() failed: %v", err)
	}

	if record.ID != "mock-purchase-id" {
		t.Errorf("record.ID = %q, want %q", record.ID, "mock-purchase-id")
	}
	if record.UserID != "jo@example.com" {
		t.Errorf("record.UserID = %q, want %q", record.UserID, "jo@example.com")
	}
	if record.TotalCents != 2*2500+1000 {
		t.Errorf("record.TotalCents = %d, want %d", record.TotalCents, 2*2500+1000)
	}
	if len(record.Items) != 2 {
		t.Errorf("record has %d items, want 2", len(record.Items))
	}

	// Cart cleared exactly once, view back to products, user still signed in.
	if len(s.Items()) != 0 {
		t.Errorf("cart should be empty after successful checkout, got %d items", len(s.Items()))
	}
	if s.ViewMode() != domain.ViewModeProducts {
		t.Errorf("view mode = %q, want %q", s.ViewMode(), domain.ViewModeProducts)
	}
	if s.User() == nil {
		t.Error("user should remain signed in after checkout")
	}

	if got := len(submitter.Submitted()); got != 1 {
		t.Errorf("submitter received %d records, want 1", got)
	}
}

func TestCheckout_FailurePreservesCart(t *testing.T) {
	ctx := context.Background()
	submitter := purchase.NewMockSubmitter()
	submitter.SubmitFunc = func(ctx context.Context, record domain.PurchaseRecord) (string, error) {
		return "", errors.New("connection refused")
	}

	s := signedInSession(t, snapshot.NewMemoryStore(), submitter)
	s.AddItem(ctx, testProduct("p1", 2500))
	s.SetViewMode(domain.ViewModeCart)

	_, err := s.Checkout(ctx)
	if domain.ErrorCode(err) != domain.EUNAVAILABLE {
		t.Errorf("Checkout() error code = %q, want %q", domain.ErrorCode(err), domain.EUNAVAILABLE)
	}

	// No cart contents are ever silently lost.
	if len(s.Items()) != 1 {
		t.Errorf("cart should be preserved after failed checkout, got %d items", len(s.Items()))
	}
	if s.ViewMode() != domain.ViewModeCart {
		t.Errorf("view mode should be unchanged after failed checkout, got %q", s.ViewMode())
	}

	// A retry after failure succeeds.
	submitter.SubmitFunc = nil
	if _, err := s.Checkout(ctx); err != nil {
		t.Fatalf("retry Checkout() failed: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Error("cart should be empty after successful retry")
	}
}

func TestCheckout_RejectsConcurrentAttempt(t *testing.T) {
	ctx := context.Background()

	inFlight := make(chan struct{})
	release := make(chan struct{})

	submitter := purchase.NewMockSubmitter()
	submitter.SubmitFunc = func(ctx context.Context, record domain.PurchaseRecord) (string, error) {
		close(inFlight)
		<-release
		return "purchase-1", nil
	}

	s := signedInSession(t, snapshot.NewMemoryStore(), submitter)
	s.AddItem(ctx, testProduct("p1", 2500))

	done := make(chan error, 1)
	go func() {
		_, err := s.Checkout(ctx)
		done <- err
	}()

	<-inFlight

	// Second attempt while the first is awaiting the submitter.
	_, err := s.Checkout(ctx)
	if !errors.Is(err, domain.ErrCheckoutPending) {
		t.Errorf("concurrent Checkout() error = %v, want ErrCheckoutPending", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Checkout() failed: %v", err)
	}

	if len(s.Items()) != 0 {
		t.Error("cart should be cleared exactly once by the first checkout")
	}
}

func TestSignOut_KeepsCart(t *testing.T) {
	ctx := context.Background()
	s := signedInSession(t, snapshot.NewMemoryStore(), purchase.NewMockSubmitter())
	s.AddItem(ctx, testProduct("p1", 1000))

	s.SignOut(ctx)

	if s.User() != nil {
		t.Error("user should be nil after sign-out")
	}
	if len(s.Items()) != 1 {
		t.Error("cart should survive sign-out")
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore()

	s := signedInSession(t, store, purchase.NewMockSubmitter())
	s.AddItem(ctx, testProduct("p1", 2500))
	s.AddItem(ctx, testProduct("p2", 1000))
	s.SetQuantity(ctx, "p2", 3)

	// A process restart drops the in-memory session; a fresh one rehydrates
	// from the same store.
	restored := New(ctx, "sess-1", store, purchase.NewMockSubmitter(), testLogger)

	items := restored.Items()
	if len(items) != 2 {
		t.Fatalf("restored cart has %d items, want 2", len(items))
	}
	if items[1].Quantity != 3 {
		t.Errorf("restored quantity = %d, want 3", items[1].Quantity)
	}
	if restored.TotalCents() != 2500+3*1000 {
		t.Errorf("restored total = %d, want %d", restored.TotalCents(), 2500+3*1000)
	}

	user := restored.User()
	if user == nil || user.Email != "jo@example.com" {
		t.Errorf("restored user = %+v, want jo@example.com", user)
	}
}

func TestRestore_CorruptedSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemoryStore()
	store.Write(ctx, "carts/sess-1.json", []byte("{not json"))

	s := New(ctx, "sess-1", store, purchase.NewMockSubmitter(), testLogger)

	if len(s.Items()) != 0 {
		t.Errorf("corrupted snapshot should yield an empty cart, got %d items", len(s.Items()))
	}

	// The session stays usable.
	s.AddItem(ctx, testProduct("p1", 1000))
	if len(s.Items()) != 1 {
		t.Error("session should accept items after discarding a corrupted snapshot")
	}
}

// failingStore rejects every write but serves reads.
type failingStore struct {
	snapshot.Store
}

func (failingStore) Write(ctx context.Context, key string, data []byte) error {
	return errors.New("disk full")
}

func TestWriteFailure_InMemoryStateAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := failingStore{Store: snapshot.NewMemoryStore()}

	s := New(ctx, "sess-1", store, purchase.NewMockSubmitter(), testLogger)
	s.AddItem(ctx, testProduct("p1", 2500))
	s.AddItem(ctx, testProduct("p1", 2500))

	// Mutations keep working against memory even though persistence fails.
	if s.ItemCount() != 2 {
		t.Errorf("ItemCount() = %d, want 2", s.ItemCount())
	}
	if s.TotalCents() != 5000 {
		t.Errorf("TotalCents() = %d, want 5000", s.TotalCents())
	}
}

func TestCheckout_PurchaseDateIsUTC(t *testing.T) {
	ctx := context.Background()
	submitter := purchase.NewMockSubmitter()
	s := signedInSession(t, snapshot.NewMemoryStore(), submitter)

	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("PST", -8*3600))
	s.now = func() time.Time { return fixed }

	s.AddItem(ctx, testProduct("p1", 1000))

	record, err := s.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout() failed: %v", err)
	}

	if record.PurchaseDate.Location() != time.UTC {
		t.Errorf("PurchaseDate location = %v, want UTC", record.PurchaseDate.Location())
	}
	if !record.PurchaseDate.Equal(fixed) {
		t.Errorf("PurchaseDate = %v, want %v", record.PurchaseDate, fixed)
	}
}
