package booking

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process SessionStore with lazy expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates a store. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	s := cloneSession(entry.session)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	entry := memoryEntry{session: cloneSession(*session)}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.sessions[session.ID] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func cloneSession(s Session) Session {
	s.State.Extras = append([]string{}, s.State.Extras...)
	if s.State.DepartureDate != nil {
		d := *s.State.DepartureDate
		s.State.DepartureDate = &d
	}
	if s.ConfirmedAt != nil {
		c := *s.ConfirmedAt
		s.ConfirmedAt = &c
	}
	return s
}
