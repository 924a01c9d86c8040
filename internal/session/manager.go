package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/duelforge/duel-server/internal/catalog"
	"github.com/duelforge/duel-server/internal/game"
)

// Manager owns the table of active sessions. It is explicitly
// constructed and injectable so tests can run isolated instances.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byPlayer map[string]*Session

	rules    game.Rules
	catalog  *catalog.Catalog
	notifier Notifier
	recorder Recorder
	logger   *zap.Logger
}

// NewManager builds a session manager. cat may be nil; see New.
func NewManager(rules game.Rules, cat *catalog.Catalog, notifier Notifier, recorder Recorder, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		byPlayer: make(map[string]*Session),
		rules:    rules,
		catalog:  cat,
		notifier: notifier,
		recorder: recorder,
		logger:   logger,
	}
}

// Create opens a session binding the two participants. first acts
// first.
func (m *Manager) Create(id, first, second string) *Session {
	s := New(id, first, second, m.rules, m.catalog, m.notifier, m.recorder, m.logger)
	s.onComplete = m.Remove

	m.mu.Lock()
	m.sessions[id] = s
	m.byPlayer[first] = s
	m.byPlayer[second] = s
	m.mu.Unlock()

	m.logger.Info("session created",
		zap.String("session_id", id),
		zap.String("first", first),
		zap.String("second", second),
	)
	return s
}

// ForPlayer returns the session a participant is bound to, if any.
func (m *Manager) ForPlayer(playerID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byPlayer[playerID]
	return s, ok
}

// Remove drops a session and its participant bindings.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return
	}
	first, second := s.PlayerIDs()
	delete(m.byPlayer, first)
	delete(m.byPlayer, second)
	delete(m.sessions, id)
}

// HandleDisconnect tears down the session a participant belongs to.
// Participants with no session are a silent no-op.
func (m *Manager) HandleDisconnect(playerID string) {
	s, ok := m.ForPlayer(playerID)
	if !ok {
		return
	}
	s.HandleDisconnect(playerID)
	m.Remove(s.ID)
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
