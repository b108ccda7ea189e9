package snapshot

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedStore wraps a Store and counts write failures. Snapshot write
// failures are swallowed by the session (in-memory state stays
// authoritative), so the counter is the main signal that the store is
// unhealthy.
type InstrumentedStore struct {
	Store
	writeFailures prometheus.Counter
}

// Instrument wraps store with the given write failure counter.
func Instrument(store Store, writeFailures prometheus.Counter) *InstrumentedStore {
	return &InstrumentedStore{Store: store, writeFailures: writeFailures}
}

// Write stores data under key, counting failures.
func (s *InstrumentedStore) Write(ctx context.Context, key string, data []byte) error {
	err := s.Store.Write(ctx, key, data)
	if err != nil {
		s.writeFailures.Inc()
	}
	return err
}
