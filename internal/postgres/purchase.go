package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nordvik/wardrobe/internal/domain"
	"github.com/nordvik/wardrobe/internal/purchase"
	"github.com/nordvik/wardrobe/internal/repository"
)

// PurchaseStore implements purchase.Submitter using PostgreSQL and doubles as
// the admin-facing purchase history reader.
type PurchaseStore struct {
	repo repository.Querier
}

var _ purchase.Submitter = (*PurchaseStore)(nil)

// NewPurchaseStore creates a new PostgreSQL-backed purchase store.
func NewPurchaseStore(repo repository.Querier) *PurchaseStore {
	return &PurchaseStore{repo: repo}
}

// Submit durably stores the purchase record and returns its assigned ID.
// Any failure here means the checkout did not happen; the caller keeps its
// cart.
func (s *PurchaseStore) Submit(ctx context.Context, record domain.PurchaseRecord) (string, error) {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return "", domain.Internal(err, "purchase.submit", "failed to serialize purchase items")
	}

	id, err := s.repo.InsertPurchase(ctx, repository.InsertPurchaseParams{
		ID:           uuid.New().String(),
		UserID:       record.UserID,
		UserName:     record.UserName,
		Items:        items,
		TotalCents:   record.TotalCents,
		PurchaseDate: record.PurchaseDate,
	})
	if err != nil {
		return "", domain.Internal(err, "purchase.submit", "failed to store purchase")
	}

	return id, nil
}

// ListPurchases returns the most recent purchases, newest first.
func (s *PurchaseStore) ListPurchases(ctx context.Context, limit int32) ([]domain.PurchaseRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.repo.ListPurchases(ctx, limit)
	if err != nil {
		return nil, domain.Internal(err, "purchase.list", "failed to list purchases")
	}

	records := make([]domain.PurchaseRecord, len(rows))
	for i, row := range rows {
		var items []domain.PurchaseItem
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, domain.Internal(err, "purchase.list", "failed to decode purchase items")
		}

		records[i] = domain.PurchaseRecord{
			ID:           row.ID,
			UserID:       row.UserID,
			UserName:     row.UserName,
			Items:        items,
			TotalCents:   row.TotalCents,
			PurchaseDate: row.PurchaseDate,
		}
	}
	return records, nil
}
