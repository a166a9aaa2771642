package pos

import (
	"fmt"
	"sync"
)

// Manager is the registry of live sessions. Each session owns isolated
// copies of the catalog, cart, and ledger; the manager never shares state
// between them.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	opts        SessionOptions
	maxSessions int
}

func NewManager(opts SessionOptions, maxSessions int) *Manager {
	if maxSessions < 1 {
		maxSessions = 256
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		opts:        opts,
		maxSessions: maxSessions,
	}
}

// Create starts a fresh session and registers it.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("%w: %d sessions active", ErrSessionLimit, len(m.sessions))
	}
	session := NewSession(m.opts)
	m.sessions[session.ID] = session
	return session, nil
}

// Get returns the session with the given id, or ErrNotFound.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	return session, nil
}

// Delete discards the session and all state it owns.
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
