// Package snapshot provides durable key-value persistence for serialized
// session state. Implementations can use the local filesystem or an in-memory
// map for tests; the cart session only depends on the Store interface.
package snapshot

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no snapshot exists for a key.
var ErrNotFound = errors.New("snapshot not found")

// Store defines the interface for snapshot persistence.
type Store interface {
	// Read retrieves the snapshot stored under key.
	// Returns ErrNotFound when the key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores data under key, replacing any previous snapshot.
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes the snapshot under key.
	// Returns nil if the key doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error
}
