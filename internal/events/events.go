// Package events publishes storefront domain events for downstream
// consumers (fulfillment, analytics). Publishing is best-effort and
// fire-and-forget: a publish failure never changes the outcome of the
// operation that produced the event.
package events

import (
	"context"

	"github.com/nordvik/wardrobe/internal/domain"
)

// Publisher emits domain events.
type Publisher interface {
	// PurchaseSubmitted is published after a checkout has been confirmed
	// durable by the persistence collaborator.
	PurchaseSubmitted(ctx context.Context, record domain.PurchaseRecord) error
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

// PurchaseSubmitted discards the event.
func (NoopPublisher) PurchaseSubmitted(ctx context.Context, record domain.PurchaseRecord) error {
	return nil
}
