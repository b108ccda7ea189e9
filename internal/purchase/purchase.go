// Package purchase defines the persistence collaborator that accepts
// submitted purchase records at checkout time.
package purchase

import (
	"context"

	"github.com/nordvik/wardrobe/internal/domain"
)

// Submitter accepts a purchase record and durably stores it, or fails.
// Any error is treated as checkout failure by the cart session; the cart is
// only cleared after Submit returns nil.
type Submitter interface {
	// Submit stores the purchase record and returns its assigned ID.
	Submit(ctx context.Context, record domain.PurchaseRecord) (string, error)
}
