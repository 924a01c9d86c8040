// Package matchmaker pairs waiting participants into match sessions.
package matchmaker

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// AliveFunc reports whether a queued participant still has a live
// connection. Stale queue entries are discarded at pairing time.
type AliveFunc func(id string) bool

// Pairing is the outcome of a successful match: the two participant
// ids and the deterministic session id derived from them. First is the
// participant who acts first — always the requester whose FindMatch
// call completed the pair.
type Pairing struct {
	SessionID string
	First     string
	Second    string
}

// Matchmaker keeps a FIFO queue of participants waiting for an
// opponent. It is an explicitly constructed value, safe for concurrent
// use; there is no package-level state.
type Matchmaker struct {
	mu     sync.Mutex
	queue  []string
	alive  AliveFunc
	logger *zap.Logger
}

// New builds a matchmaker. alive may be nil, in which case every queued
// entry is considered live.
func New(alive AliveFunc, logger *zap.Logger) *Matchmaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if alive == nil {
		alive = func(string) bool { return true }
	}
	return &Matchmaker{alive: alive, logger: logger}
}

// FindMatch attempts to pair id with the oldest waiting participant.
// It returns the pairing, or nil if id was enqueued to wait. Entries
// whose connection has gone away are silently dropped; the requester
// takes their place in the queue if nobody live remains.
func (m *Matchmaker) FindMatch(id string) *Pairing {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.queue) > 0 {
		opponent := m.queue[0]
		m.queue = m.queue[1:]

		if opponent == id {
			continue
		}
		if !m.alive(opponent) {
			m.logger.Debug("dropped stale matchmaking entry", zap.String("player_id", opponent))
			continue
		}

		pairing := &Pairing{
			SessionID: SessionID(id, opponent),
			First:     id,
			Second:    opponent,
		}
		m.logger.Info("matched players",
			zap.String("session_id", pairing.SessionID),
			zap.String("first", pairing.First),
			zap.String("second", pairing.Second),
		)
		return pairing
	}

	m.queue = append(m.queue, id)
	m.logger.Debug("player queued for matchmaking",
		zap.String("player_id", id),
		zap.Int("queue_size", len(m.queue)),
	)
	return nil
}

// CancelMatch removes id from the queue. Removing an id that is not
// queued is a no-op.
func (m *Matchmaker) CancelMatch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
}

// Remove drops id from the queue on disconnect.
func (m *Matchmaker) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
}

func (m *Matchmaker) remove(id string) {
	for i, queued := range m.queue {
		if queued == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// QueueLen returns the number of waiting participants.
func (m *Matchmaker) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// SessionID derives the deterministic session id for a pair of
// participants: their ids in sorted order, joined.
func SessionID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "-")
}
