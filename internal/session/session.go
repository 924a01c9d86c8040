// Package session binds two matched participants to one match and
// relays gameplay traffic between them.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/duelforge/duel-server/internal/catalog"
	"github.com/duelforge/duel-server/internal/game"
)

// Notifier delivers an outbound message to a participant. The
// transport layer provides it; delivery to a gone participant is a
// silent no-op.
type Notifier interface {
	Send(playerID, msgType string, payload any)
}

// Recorder receives match results at game end. A nil Recorder disables
// result persistence.
type Recorder interface {
	RecordResult(ctx context.Context, playerID string, won bool, data game.GameData) error
}

// Action names understood by the session layer. Anything else inside a
// gameAction envelope is relayed verbatim to the opponent.
const (
	ActionDeckSelected = "deckSelected"
	ActionPlayCard     = "playCard"
	ActionAttack       = "attack"
	ActionEndTurn      = "endTurn"
)

// GameAction is the decoded inbound gameplay envelope. Raw retains the
// original payload for verbatim relay.
type GameAction struct {
	Action      string             `json:"action"`
	Deck        []catalog.Template `json:"deck,omitempty"`
	CardIndex   int                `json:"cardIndex"`
	Target      int                `json:"target"`
	AttackerIdx int                `json:"attacker"`

	Raw json.RawMessage `json:"-"`
}

type participant struct {
	playerID string
	ready    bool
	deck     []catalog.Template
}

// Session pairs two participants around one match. All message
// handling for a session is serialized through its mutex, so the match
// behaves as a single-threaded state machine.
type Session struct {
	ID string

	mu           sync.Mutex
	participants [2]participant
	match        *game.Match
	closed       bool

	rules      game.Rules
	catalog    *catalog.Catalog
	notifier   Notifier
	recorder   Recorder
	onComplete func(sessionID string)
	logger     *zap.Logger
}

// New creates a session for the two given participants. first acts
// first once the game starts. cat may be nil, in which case submitted
// deck templates are taken at face value.
func New(id, first, second string, rules game.Rules, cat *catalog.Catalog, notifier Notifier, recorder Recorder, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:       id,
		rules:    rules,
		catalog:  cat,
		notifier: notifier,
		recorder: recorder,
		logger:   logger,
	}
	s.participants[0] = participant{playerID: first}
	s.participants[1] = participant{playerID: second}
	return s
}

// PlayerIDs returns both participant ids, first-acting player first.
func (s *Session) PlayerIDs() (string, string) {
	return s.participants[0].playerID, s.participants[1].playerID
}

// indexOf maps a participant id to its side, or -1 if not bound here.
func (s *Session) indexOf(playerID string) int {
	for i, p := range s.participants {
		if p.playerID == playerID {
			return i
		}
	}
	return -1
}

// HandleGameAction processes one inbound gameplay message from a
// participant. Unknown participants are a silent no-op.
func (s *Session) HandleGameAction(playerID string, action GameAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	idx := s.indexOf(playerID)
	if idx < 0 {
		return
	}

	switch action.Action {
	case ActionDeckSelected:
		s.handleDeckSelected(idx, action.Deck)
	case ActionPlayCard:
		s.dispatch(idx, func() game.ActionResult {
			return s.match.PlayCard(idx, action.CardIndex, action.Target)
		})
	case ActionAttack:
		s.dispatch(idx, func() game.ActionResult {
			return s.match.ProcessAttack(idx, action.AttackerIdx, action.Target)
		})
	case ActionEndTurn:
		s.dispatch(idx, func() game.ActionResult {
			return s.match.EndTurn(idx)
		})
	default:
		// Opaque payload: relay verbatim to the other participant.
		s.notifier.Send(s.participants[1-idx].playerID, "gameAction", action.Raw)
	}
}

// handleDeckSelected records a participant's deck and readiness. When
// both sides are ready the match is created and one game-start event is
// emitted to both participants.
func (s *Session) handleDeckSelected(idx int, deck []catalog.Template) {
	// A repeated submission must never restart a match in progress or
	// swap a deck already locked in.
	if s.match != nil || s.participants[idx].ready {
		s.notifier.Send(s.participants[idx].playerID, "actionRejected",
			map[string]any{"reason": "deck already submitted"})
		s.logger.Warn("duplicate deck submission rejected",
			zap.String("session_id", s.ID),
			zap.String("player_id", s.participants[idx].playerID),
		)
		return
	}

	s.participants[idx].deck = s.resolveDeck(deck)
	s.participants[idx].ready = true

	opponent := s.participants[1-idx]
	s.notifier.Send(opponent.playerID, "opponentReady", nil)

	s.logger.Info("deck submitted",
		zap.String("session_id", s.ID),
		zap.String("player_id", s.participants[idx].playerID),
		zap.Int("deck_size", len(deck)),
	)

	if !s.participants[0].ready || !s.participants[1].ready {
		return
	}

	s.startMatch()
}

// resolveDeck maps submitted templates to their authoritative catalog
// entries. Names unknown to the catalog fall back to the submitted
// stats with their ability text parsed here.
func (s *Session) resolveDeck(deck []catalog.Template) []catalog.Template {
	resolved := make([]catalog.Template, 0, len(deck))
	for _, tpl := range deck {
		if s.catalog != nil {
			if known, ok := s.catalog.Get(tpl.Name); ok {
				resolved = append(resolved, known)
				continue
			}
		}
		tpl.Ability = catalog.ParseAbility(tpl.AbilityText, tpl.Type)
		resolved = append(resolved, tpl)
	}
	return resolved
}

// startMatch creates the match and emits the single game-start event.
func (s *Session) startMatch() {
	s.match = game.NewMatch(s.ID, s.participants[0].deck, s.participants[1].deck, s.rules, s.logger)

	start := map[string]any{
		"type":        "gameStart",
		"player1Deck": s.participants[0].deck,
		"player2Deck": s.participants[1].deck,
		"firstPlayer": s.participants[0].playerID,
	}
	s.notifier.Send(s.participants[0].playerID, "gameAction", start)
	s.notifier.Send(s.participants[1].playerID, "gameAction", start)

	s.broadcastState()
}

// dispatch runs an engine action and broadcasts the resulting state.
// Rejections are sent only to the acting participant.
func (s *Session) dispatch(idx int, run func() game.ActionResult) {
	if s.match == nil {
		s.notifier.Send(s.participants[idx].playerID, "actionRejected",
			map[string]any{"reason": "game has not started"})
		return
	}

	result := run()
	if !result.OK {
		s.notifier.Send(s.participants[idx].playerID, "actionRejected",
			map[string]any{"reason": result.Reason})
		return
	}

	s.broadcastState()

	if over, _ := s.match.Over(); over {
		s.recordResults()
		s.closed = true
		if s.onComplete != nil {
			s.onComplete(s.ID)
		}
	}
}

// broadcastState sends each participant their view of the match.
func (s *Session) broadcastState() {
	for i, p := range s.participants {
		s.notifier.Send(p.playerID, "gameState", s.match.View(i))
	}
}

// recordResults hands both players' outcomes to the result store.
// Persistence failures are logged, never surfaced to clients.
func (s *Session) recordResults() {
	if s.recorder == nil {
		return
	}
	_, winner := s.match.Over()
	for i, p := range s.participants {
		won := winner != nil && *winner == i
		if err := s.recorder.RecordResult(context.Background(), p.playerID, won, s.match.StatsFor(i)); err != nil {
			s.logger.Warn("failed to record match result",
				zap.String("session_id", s.ID),
				zap.String("player_id", p.playerID),
				zap.Error(err),
			)
		}
	}
}

// HandleDisconnect tears the session down when either participant
// drops. The remaining participant is notified; the match is not
// recoverable. A match still in progress ends as a forfeit by the
// disconnecting player and the result is recorded.
func (s *Session) HandleDisconnect(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	idx := s.indexOf(playerID)
	if idx < 0 {
		return
	}

	s.closed = true

	if s.match != nil {
		s.match.Forfeit(idx)
		s.recordResults()
	}

	s.notifier.Send(s.participants[1-idx].playerID, "opponentDisconnected", nil)

	s.logger.Info("session torn down on disconnect",
		zap.String("session_id", s.ID),
		zap.String("player_id", playerID),
	)
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
