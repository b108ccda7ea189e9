package domain

import "time"

// PurchaseItem is one line of a submitted purchase.
type PurchaseItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price"`
	Quantity   int      `json:"quantity"`
	Category   Category `json:"category"`
}

// PurchaseRecord is the durable record of a completed checkout. It is built
// transiently at checkout time and handed to the persistence collaborator;
// the cart session never retains purchase history.
type PurchaseRecord struct {
	ID           string         `json:"purchaseId,omitempty"`
	UserID       string         `json:"userId"`
	UserName     string         `json:"userName"`
	Items        []PurchaseItem `json:"items"`
	TotalCents   int64          `json:"total"`
	PurchaseDate time.Time      `json:"purchaseDate"`
}

// NewPurchaseRecord builds a purchase record from the signed-in user and a
// cart snapshot.
func NewPurchaseRecord(user UserIdentity, items Cart, at time.Time) PurchaseRecord {
	purchaseItems := make([]PurchaseItem, len(items))
	for i, li := range items {
		purchaseItems[i] = PurchaseItem{
			ID:         li.ProductID,
			Name:       li.Name,
			PriceCents: li.PriceCents,
			Quantity:   li.Quantity,
			Category:   li.Category,
		}
	}

	return PurchaseRecord{
		UserID:       user.Email,
		UserName:     user.Name,
		Items:        purchaseItems,
		TotalCents:   items.TotalCents(),
		PurchaseDate: at,
	}
}
