package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTimeout is how long a session may stay untouched before it ends.
const DefaultIdleTimeout = 2 * time.Hour

type entry struct {
	state    *State
	lastSeen time.Time
}

// Manager owns the states of all live sessions, keyed by session ID.
// It is safe for concurrent use by HTTP handlers.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	idleTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// NewManager creates a Manager that ends sessions idle for longer than
// idleTimeout. A zero timeout uses DefaultIdleTimeout.
func NewManager(idleTimeout time.Duration, logger *slog.Logger) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		sessions:    make(map[string]*entry),
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger,
	}
}

// NewID returns a fresh opaque session ID.
func NewID() string {
	return uuid.NewString()
}

// Get returns the state for id, creating an empty one for a new session.
// Every call counts as activity on the session.
func (m *Manager) Get(id string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		e = &entry{state: NewState()}
		m.sessions[id] = e
		m.logger.Debug("session started", "session", id)
	}
	e.lastSeen = m.now()
	return e.state
}

// Lookup returns the state for id without creating or touching it.
func (m *Manager) Lookup(id string) (*State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return e.state, true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep ends every session idle for longer than the idle timeout and returns
// how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idleTimeout)
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("swept idle sessions", "removed", removed, "remaining", len(m.sessions))
	}
	return removed
}

// Run sweeps idle sessions periodically until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	interval := m.idleTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}
