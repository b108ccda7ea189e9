package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nordvik/wardrobe/internal/purchase"
	"github.com/nordvik/wardrobe/internal/snapshot"
)

const (
	// sessionIdleTTL bounds how long an untouched session stays in memory.
	// Every mutation persists, so an evicted session is revived from its
	// snapshots on the next access.
	sessionIdleTTL = time.Hour

	// sweepInterval spaces out eviction scans.
	sweepInterval = time.Minute
)

// Manager owns one CartSession per active browsing session, keyed by session
// ID. Sessions are created lazily, rehydrated from the snapshot store on
// first access after a restart, and dropped from memory once idle.
type Manager struct {
	store     snapshot.Store
	submitter purchase.Submitter
	logger    *slog.Logger

	now func() time.Time

	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	lastSweep time.Time
}

type sessionEntry struct {
	session  *CartSession
	lastSeen time.Time
}

// NewManager creates a session manager backed by the given snapshot store and
// purchase submitter.
func NewManager(store snapshot.Store, submitter purchase.Submitter, logger *slog.Logger) *Manager {
	return &Manager{
		store:     store,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*sessionEntry),
	}
}

// GetOrCreate returns the session for sessionID, creating it (and a fresh ID
// when sessionID is empty). Returns the session and the ID the caller should
// carry forward.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string) (*CartSession, string, error) {
	if sessionID == "" {
		id, err := GenerateSessionID()
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate session ID: %w", err)
		}
		sessionID = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdleLocked(now)

	if e, ok := m.sessions[sessionID]; ok {
		e.lastSeen = now
		return e.session, sessionID, nil
	}

	s := New(ctx, sessionID, m.store, m.submitter, m.logger)
	m.sessions[sessionID] = &sessionEntry{session: s, lastSeen: now}
	return s, sessionID, nil
}

// Get returns the session for sessionID if it exists in memory or has a
// persisted snapshot; otherwise ok is false.
func (m *Manager) Get(ctx context.Context, sessionID string) (*CartSession, bool) {
	if sessionID == "" {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdleLocked(now)

	if e, ok := m.sessions[sessionID]; ok {
		e.lastSeen = now
		return e.session, true
	}

	// A restart or eviction dropped the in-memory entry; a session with a
	// persisted cart or identity is still a live session. The identity key
	// matters on its own: a user can sign in without ever touching the cart.
	if !m.hasSnapshot(ctx, sessionID) {
		return nil, false
	}

	s := New(ctx, sessionID, m.store, m.submitter, m.logger)
	m.sessions[sessionID] = &sessionEntry{session: s, lastSeen: now}
	return s, true
}

func (m *Manager) hasSnapshot(ctx context.Context, sessionID string) bool {
	if _, err := m.store.Read(ctx, cartKey(sessionID)); err == nil {
		return true
	}
	_, err := m.store.Read(ctx, userKey(sessionID))
	return err == nil
}

// evictIdleLocked drops sessions untouched for longer than sessionIdleTTL.
// In-flight requests keep their own session reference; every mutation
// persists, so a later revival sees current state.
func (m *Manager) evictIdleLocked(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now

	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > sessionIdleTTL {
			delete(m.sessions, id)
		}
	}
}
