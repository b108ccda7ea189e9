package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/nordvik/wardrobe/internal/domain"
)

// SubjectPurchaseSubmitted is the subject purchase events are published on.
const SubjectPurchaseSubmitted = "wardrobe.purchase.submitted"

// NATSPublisher implements Publisher over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("wardrobe"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

// PurchaseSubmitted publishes the purchase record as JSON.
func (p *NATSPublisher) PurchaseSubmitted(ctx context.Context, record domain.PurchaseRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize purchase event: %w", err)
	}

	if err := p.conn.Publish(SubjectPurchaseSubmitted, data); err != nil {
		return fmt.Errorf("failed to publish purchase event: %w", err)
	}

	return nil
}

// Close drains and closes the underlying connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
