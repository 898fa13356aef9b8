package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session keeps its results.
const DefaultTTL = 2 * time.Hour

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Manager maps session identifiers to their result stores and evicts idle
// sessions.
type Manager struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time
}

// NewManager creates a manager with the given idle TTL (DefaultTTL when
// zero).
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewSessionID mints an identifier for a new session cookie.
func NewSessionID() string {
	return uuid.New().String()
}

// Get returns the store for id, creating one if needed, and refreshes the
// session's idle timer. Expired sessions are swept opportunistically.
func (m *Manager) Get(id string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	e, ok := m.entries[id]
	if !ok {
		e = &entry{store: NewStore()}
		m.entries[id] = e
	}
	e.lastSeen = now
	return e.store
}

// Drop removes a session immediately.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

// ActiveSessions returns the number of live sessions.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(m.now())
	return len(m.entries)
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, e := range m.entries {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.entries, id)
		}
	}
}
