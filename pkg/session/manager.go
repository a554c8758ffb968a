package session

import (
	"sync"
	"time"
)

// Manager owns the set of live sessions, keyed by session ID (the
// transport-level connection or node identifier). It is safe for
// concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the existing session for id, or creates one bound
// to nodeID if none exists yet.
func (m *Manager) GetOrCreate(id, nodeID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := New(id, nodeID)
	m.sessions[id] = s
	return s
}

// Get returns the session for id, or nil if none exists.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// GetErr returns the session for id, or ErrSessionNotFound if none
// exists — for callers that want a lookup failure to propagate as an
// error rather than a nil check.
func (m *Manager) GetErr(id string) (*Session, error) {
	if s := m.Get(id); s != nil {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

// Remove deletes a session, e.g. after an explicit logout/disconnect.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// List returns every live session in no particular order.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepStats reports the outcome of a Sweep call.
type SweepStats struct {
	SessionsEvicted int
}

// Sweep evicts every session that has been inactive longer than
// timeout, returning how many were removed. Intended to run on a
// periodic ticker alongside the transport's main loop.
func (m *Manager) Sweep(timeout time.Duration) SweepStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats SweepStats
	for id, s := range m.sessions {
		if s.IsInactive(timeout) {
			delete(m.sessions, id)
			stats.SessionsEvicted++
		}
	}
	return stats
}
