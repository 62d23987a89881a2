// Package session keeps logged-in principals in process memory, keyed by an
// opaque bearer token.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostel_portal/internal/domain"
)

type Session struct {
	Token      string      `json:"token"`
	Role       domain.Role `json:"role"`
	Email      string      `json:"email,omitempty"`
	ResidentID string      `json:"resident_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

func (s Session) Principal() domain.Principal {
	return domain.Principal{Role: s.Role, Email: s.Email, ResidentID: s.ResidentID}
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{sessions: make(map[string]Session), ttl: ttl, now: time.Now}
}

// WithClock swaps the time source; tests use it to expire sessions.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Create(p domain.Principal) Session {
	now := m.now()
	s := Session{
		Token:      uuid.NewString(),
		Role:       p.Role,
		Email:      p.Email,
		ResidentID: p.ResidentID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Get returns the live session for token. Expired sessions are dropped.
func (m *Manager) Get(token string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if m.ttl > 0 && !m.now().Before(s.ExpiresAt) {
		m.Delete(token)
		return Session{}, false
	}
	return s, true
}

func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every expired session and reports how many went.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, k)
			n++
		}
	}
	return n
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
