package storefront

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/identity"
	"github.com/nordvik/wardrobe/internal/purchase"
	"github.com/nordvik/wardrobe/internal/session"
	"github.com/nordvik/wardrobe/internal/snapshot"
	"github.com/nordvik/wardrobe/internal/telemetry"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = telemetry.NewBusinessMetrics("wardrobe_storefront_test")

// mockCatalog implements domain.CatalogService for testing.
type mockCatalog struct {
	listProductsFunc func(ctx context.Context, category *domain.Category) ([]domain.Product, error)
	getProductFunc   func(ctx context.Context, id string) (*domain.Product, error)
}

func (m *mockCatalog) ListProducts(ctx context.Context, category *domain.Category) ([]domain.Product, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx, category)
	}
	return nil, nil
}

func (m *mockCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if m.getProductFunc != nil {
		return m.getProductFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalog) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	return nil, domain.Internal(nil, "mock", "not implemented")
}

func (m *mockCatalog) UpdateProduct(ctx context.Context, id string, params domain.UpdateProductParams) (*domain.Product, error) {
	return nil, domain.Internal(nil, "mock", "not implemented")
}

func (m *mockCatalog) DeleteProduct(ctx context.Context, id string) error {
	return domain.Internal(nil, "mock", "not implemented")
}

// mockPublisher captures published purchase events.
type mockPublisher struct {
	mu      sync.Mutex
	records []domain.PurchaseRecord
}

func (m *mockPublisher) PurchaseSubmitted(ctx context.Context, record domain.PurchaseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockPublisher) published() []domain.PurchaseRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PurchaseRecord, len(m.records))
	copy(out, m.records)
	return out
}

// testEnv bundles the handler under test with its collaborators.
type testEnv struct {
	cart      *CartHandler
	auth      *AuthHandler
	sessions  *session.Manager
	catalog   *mockCatalog
	provider  *identity.MockProvider
	submitter *purchase.MockSubmitter
	publisher *mockPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog := &mockCatalog{}
	provider := &identity.MockProvider{}
	submitter := purchase.NewMockSubmitter()
	publisher := &mockPublisher{}
	sessions := session.NewManager(snapshot.NewMemoryStore(), submitter, testLogger)

	return &testEnv{
		cart:      NewCartHandler(sessions, catalog, publisher, testMetrics, testLogger, false),
		auth:      NewAuthHandler(sessions, provider, testMetrics, testLogger, false),
		sessions:  sessions,
		catalog:   catalog,
		provider:  provider,
		submitter: submitter,
		publisher: publisher,
	}
}

// newSignedInSession creates a session with a signed-in user and returns its ID.
func (e *testEnv) newSignedInSession(t *testing.T) string {
	t.Helper()

	s, id, err := e.sessions.GetOrCreate(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	s.SignIn(context.Background(), domain.UserIdentity{Email: "jo@example.com", Name: "Jo"})
	return id
}

func withSessionCookie(req *http.Request, sessionID string) *http.Request {
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

func doRequest(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
