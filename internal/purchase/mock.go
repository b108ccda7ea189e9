package purchase

import (
	"context"
	"sync"

	"github.com/nordvik/wardrobe/internal/domain"
)

// MockSubmitter implements Submitter for testing.
type MockSubmitter struct {
	// SubmitFunc overrides Submit behavior when set.
	SubmitFunc func(ctx context.Context, record domain.PurchaseRecord) (string, error)

	mu        sync.Mutex
	submitted []domain.PurchaseRecord
}

// NewMockSubmitter creates a mock submitter that accepts every record.
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{}
}

// Submit records the purchase and delegates to SubmitFunc when set.
func (m *MockSubmitter) Submit(ctx context.Context, record domain.PurchaseRecord) (string, error) {
	if m.SubmitFunc != nil {
		id, err := m.SubmitFunc(ctx, record)
		if err != nil {
			return "", err
		}
		m.record(record)
		return id, nil
	}

	m.record(record)
	return "mock-purchase-id", nil
}

// Submitted returns the records accepted so far.
func (m *MockSubmitter) Submitted() []domain.PurchaseRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.PurchaseRecord, len(m.submitted))
	copy(out, m.submitted)
	return out
}

func (m *MockSubmitter) record(r domain.PurchaseRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, r)
}
