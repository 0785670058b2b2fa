package session

import (
	"context"
	"sync"
	"time"
)

// sweepInterval bounds how often Create scans for expired sessions.
const sweepInterval = time.Minute

// MemoryStore keeps sessions in process memory. Everything is lost on
// restart. Expired entries are dropped on read and swept from Create, so
// sessions that are never read again do not pile up.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]Session
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	now := m.now()
	if err := validate(s, now); err != nil {
		return err
	}

	m.mu.Lock()
	if !now.Before(m.nextSweep) {
		m.sweepLocked(now)
	}
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return nil
}

// sweepLocked drops every expired session. m.mu must be held.
func (m *MemoryStore) sweepLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if s.Expired(m.now()) {
		m.mu.Lock()
		// only drop the entry we looked at; a concurrent Create may have replaced it
		if cur, ok := m.sessions[id]; ok && cur.ExpiresAt.Equal(s.ExpiresAt) {
			delete(m.sessions, id)
		}
		m.mu.Unlock()
		return nil, nil
	}

	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
