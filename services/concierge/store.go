// File: services/concierge/store.go
package concierge

import (
	"context"
	"sync"
	"time"

	"guestdesk/models"
)

// SessionStore keeps per-caller conversation state with TTL expiry. Get
// returns (nil, nil) for an absent or expired session.
type SessionStore interface {
	Get(ctx context.Context, key string) (*models.Session, error)
	Set(ctx context.Context, key string, s *models.Session) error
	Clear(ctx context.Context, key string) error
}

// MemorySessionStore is the in-process store used by tests and redis-less
// deployments. Expiry is checked passively on access; there is no sweeper.
type MemorySessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	session   *models.Session
	expiresAt time.Time
}

// NewMemorySessionStore builds a store with the given idle TTL.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemorySessionStore) Get(_ context.Context, key string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, nil
	}
	return e.session, nil
}

func (m *MemorySessionStore) Set(_ context.Context, key string, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{session: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
