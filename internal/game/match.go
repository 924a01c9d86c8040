package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/duelforge/duel-server/internal/catalog"
)

// ActionResult is the outcome of a player action. Rule violations are
// reported here with the match state left completely unchanged; the
// engine never returns an error for an illegal move.
type ActionResult struct {
	OK     bool
	Reason string
}

func accepted() ActionResult { return ActionResult{OK: true} }

// LogEntry is one line of the bounded match log.
type LogEntry struct {
	Message      string    `json:"message"`
	Time         time.Time `json:"timestamp"`
	Turn         int       `json:"turn"`
	ActivePlayer int       `json:"activePlayer"`
}

// Match is the authoritative state machine for one two-player battle.
// It is not safe for concurrent use; the session layer serializes all
// access to a match.
type Match struct {
	ID string

	players    [2]*Player
	current    int
	turnNumber int
	totalTurns int
	gameOver   bool
	winner     *int

	log    []LogEntry
	rules  Rules
	logger *zap.Logger
}

// NewMatch builds a match from two instantiated decks and draws each
// player's opening hand. Player 0 acts first.
func NewMatch(id string, deck0, deck1 []catalog.Template, rules Rules, logger *zap.Logger) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Match{
		ID:         id,
		turnNumber: 1,
		rules:      rules,
		logger:     logger,
	}
	m.players[0] = newPlayer(deck0, rules)
	m.players[1] = newPlayer(deck1, rules)

	m.players[0].Draw(rules.StartingHand)
	m.players[1].Draw(rules.StartingHand)

	// Player 0's first mana ramp happens at creation; every later ramp
	// runs in EndTurn for the incoming player.
	m.players[0].MaxMana = 1
	m.players[0].Mana = 1

	m.appendLog("game started")

	logger.Info("match created",
		zap.String("match_id", id),
		zap.Int("deck0", len(deck0)),
		zap.Int("deck1", len(deck1)),
	)

	return m
}

// player returns the given side.
func (m *Match) player(idx int) *Player { return m.players[idx] }

// opponentOf returns the other side. All "other side" reasoning goes
// through this accessor rather than ad-hoc index arithmetic.
func (m *Match) opponentOf(idx int) *Player { return m.players[1-idx] }

func (m *Match) opponentIndex(idx int) int { return 1 - idx }

// CurrentTurn returns the index of the player whose turn it is.
func (m *Match) CurrentTurn() int { return m.current }

// TurnNumber returns the current turn number (increments each time play
// returns to player 0).
func (m *Match) TurnNumber() int { return m.turnNumber }

// Over reports whether the match has ended and who won. A nil winner on
// a finished match means a draw.
func (m *Match) Over() (bool, *int) { return m.gameOver, m.winner }

// Log returns a copy of the bounded match log.
func (m *Match) Log() []LogEntry {
	out := make([]LogEntry, len(m.log))
	copy(out, m.log)
	return out
}

// StatsFor returns the accumulated match statistics for one side.
func (m *Match) StatsFor(idx int) GameData { return m.players[idx].Stats }

// appendLog adds a message to the match log, keeping only the newest
// rules.LogSize entries.
func (m *Match) appendLog(format string, args ...any) {
	m.log = append(m.log, LogEntry{
		Message:      fmt.Sprintf(format, args...),
		Time:         time.Now(),
		Turn:         m.turnNumber,
		ActivePlayer: m.current,
	})
	if len(m.log) > m.rules.LogSize {
		m.log = m.log[len(m.log)-m.rules.LogSize:]
	}
}

// reject records a rule violation in the match log and returns the
// failed result. State is never mutated before reject is called.
func (m *Match) reject(format string, args ...any) ActionResult {
	reason := fmt.Sprintf(format, args...)
	m.appendLog("rejected: %s", reason)
	return ActionResult{OK: false, Reason: reason}
}

// EndTurn hands the turn to the other player and runs the start-of-turn
// sequence for them: mana ramp, creature readying, burn damage, draw.
func (m *Match) EndTurn(playerIdx int) ActionResult {
	if m.gameOver {
		return m.reject("game is over")
	}
	if playerIdx != m.current {
		return m.reject("not player %d's turn", playerIdx)
	}

	// Temporary immunity lasts until the end of the turn it was granted.
	for _, side := range m.players {
		for _, c := range side.Field {
			c.ClearStatus(StatusTempImmune)
		}
	}

	m.current = m.opponentIndex(m.current)
	m.totalTurns++
	if m.current == 0 {
		m.turnNumber++
	}

	incoming := m.player(m.current)

	if incoming.MaxMana < m.rules.MaxMana {
		incoming.MaxMana++
	}
	incoming.Mana = incoming.MaxMana

	for _, c := range incoming.Field {
		c.ResetForTurn()
	}

	// Opposing Burn creatures scorch the incoming player.
	for _, c := range m.opponentOf(m.current).Field {
		if c.HasKeyword(catalog.KeywordBurn) {
			m.damagePlayer(m.opponentIndex(m.current), m.current, 1)
			if m.gameOver {
				return accepted()
			}
		}
	}

	incoming.Draw(1)

	m.appendLog("turn %d: player %d", m.turnNumber, m.current)

	return accepted()
}

// PlayCard plays the card at handIdx from the acting player's hand.
// target addresses a spell's target: an opposing field index, or -1 for
// the opposing player. Rejections leave the match untouched.
func (m *Match) PlayCard(playerIdx, handIdx, target int) ActionResult {
	if m.gameOver {
		return m.reject("game is over")
	}
	if playerIdx != m.current {
		return m.reject("not player %d's turn", playerIdx)
	}

	p := m.player(playerIdx)
	if handIdx < 0 || handIdx >= len(p.Hand) {
		return m.reject("hand index %d out of range", handIdx)
	}

	card := p.Hand[handIdx]
	cost := m.effectiveCost(p, card)
	if cost > p.Mana {
		return m.reject("not enough mana for %s (need %d, have %d)", card.Name, cost, p.Mana)
	}
	if card.Type == catalog.TypeCreature && len(p.Field) >= m.rules.MaxFieldSize {
		return m.reject("field is full")
	}

	p.Hand = append(p.Hand[:handIdx], p.Hand[handIdx+1:]...)
	p.Mana -= cost
	p.Stats.ManaSpent += cost
	p.Stats.CardsPlayed++

	if card.Type == catalog.TypeCreature {
		m.playCreature(playerIdx, card)
	} else {
		p.SpellsCast++
		m.resolveSpell(playerIdx, card, target)
		p.Graveyard = append(p.Graveyard, card)
	}

	m.appendLog("player %d played %s", playerIdx, card.Name)

	return accepted()
}

// effectiveCost applies cost modifiers: cost-scaling cards get cheaper
// by one per spell their owner has cast, floored at zero.
func (m *Match) effectiveCost(p *Player, card *Card) int {
	cost := card.Cost
	if card.HasKeyword(catalog.KeywordCostScaling) {
		cost -= p.SpellsCast
		if cost < 0 {
			cost = 0
		}
	}
	return cost
}

// playCreature puts a creature onto the field, applies its entry
// statuses, and fires its enter-play trigger.
func (m *Match) playCreature(playerIdx int, card *Card) {
	p := m.player(playerIdx)

	// Summoning sickness unless the creature can move out immediately.
	switch card.Ability.Keyword {
	case catalog.KeywordRush:
		card.SetStatus(StatusCreaturesOnly)
	case catalog.KeywordCharge:
		// Fully unrestricted immediate attack.
	default:
		card.SetStatus(StatusTapped)
	}

	switch card.Ability.Keyword {
	case catalog.KeywordVigilance:
		card.SetStatus(StatusVigilance)
	case catalog.KeywordTaunt:
		card.SetStatus(StatusTaunt)
	case catalog.KeywordDivineShield:
		card.SetStatus(StatusDivineShield)
	case catalog.KeywordStealth:
		card.SetStatus(StatusStealth)
	case catalog.KeywordSpellShield:
		card.SetStatus(StatusSpellShield)
	case catalog.KeywordPoison:
		card.SetStatus(StatusInstantKill)
	case catalog.KeywordImmune:
		card.SetStatus(StatusImmune)
	}

	p.Field = append(p.Field, card)

	switch card.Ability.Keyword {
	case catalog.KeywordBattlecryDraw:
		p.Draw(card.Ability.Amount)
	case catalog.KeywordBattlecryDamage:
		m.damagePlayer(playerIdx, m.opponentIndex(playerIdx), card.Ability.Amount)
	case catalog.KeywordBattlecryAOE:
		for _, enemy := range m.opponentOf(playerIdx).Field {
			enemy.TakeDamage(card.Ability.Amount)
		}
		m.sweepDeaths()
	case catalog.KeywordBattlecryToken:
		for i := 0; i < card.Ability.Amount && len(p.Field) < m.rules.MaxFieldSize; i++ {
			token := NewCard(catalog.Token())
			token.SetStatus(StatusTapped)
			p.Field = append(p.Field, token)
		}
	}

	p.RecomputeSpellPower()
}

// resolveSpell applies a spell's effect. Damage spells add the caster's
// spell power to their base amount.
func (m *Match) resolveSpell(playerIdx int, card *Card, target int) {
	p := m.player(playerIdx)
	opp := m.opponentOf(playerIdx)

	switch card.Ability.Keyword {
	case catalog.KeywordSpellDamage:
		amount := card.Ability.Amount + p.SpellPower
		if target < 0 || target >= len(opp.Field) {
			m.damagePlayer(playerIdx, m.opponentIndex(playerIdx), amount)
			return
		}
		victim := opp.Field[target]
		// A spell shield absorbs the whole spell, freeze included, and
		// is consumed.
		if victim.Has(StatusSpellShield) {
			victim.ClearStatus(StatusSpellShield)
			return
		}
		victim.TakeDamage(amount)
		if card.Ability.Freezes && victim.Health > 0 {
			victim.SetStatus(StatusFrozen)
		}
		m.sweepDeaths()

	case catalog.KeywordSpellRestore:
		p.Heal(card.Ability.Amount)

	case catalog.KeywordSpellMassBuff:
		delta := card.Ability.Amount
		for _, c := range p.Field {
			c.Attack += delta
			c.Health += delta
			c.MaxHealth += delta
		}

	case catalog.KeywordSpellDraw:
		p.Draw(card.Ability.Amount)
	}
}

// damagePlayer deals face damage from one player to the other, tracks
// match statistics, and checks for game over immediately.
func (m *Match) damagePlayer(fromIdx, toIdx, amount int) {
	if amount <= 0 {
		return
	}
	m.player(fromIdx).Stats.DamageDealt += amount
	m.player(toIdx).Stats.DamageTaken += amount
	m.player(toIdx).Health -= amount
	m.checkGameOver()
}

// checkGameOver latches the terminal state the moment either player's
// health reaches zero. If both players are dead in the same event the
// match is a draw.
func (m *Match) checkGameOver() {
	if m.gameOver {
		return
	}

	dead0 := m.players[0].Health <= 0
	dead1 := m.players[1].Health <= 0

	switch {
	case dead0 && dead1:
		m.gameOver = true
		m.winner = nil
		m.appendLog("game over: draw")
	case dead0:
		w := 1
		m.gameOver = true
		m.winner = &w
		m.appendLog("game over: player 1 wins")
	case dead1:
		w := 0
		m.gameOver = true
		m.winner = &w
		m.appendLog("game over: player 0 wins")
	}

	if m.gameOver {
		m.logger.Info("match finished",
			zap.String("match_id", m.ID),
			zap.Any("winner", m.winner),
			zap.Int("total_turns", m.totalTurns),
		)
	}
}

// Forfeit ends the match immediately with the given player losing. A
// match that is already over keeps its original outcome.
func (m *Match) Forfeit(loserIdx int) {
	if m.gameOver {
		return
	}
	w := m.opponentIndex(loserIdx)
	m.gameOver = true
	m.winner = &w
	m.appendLog("game over: player %d forfeits", loserIdx)

	m.logger.Info("match forfeited",
		zap.String("match_id", m.ID),
		zap.Int("loser", loserIdx),
	)
}

// sweepDeaths removes dead creatures from both fields, firing death
// triggers, until no more deaths occur. Running the sweep with no new
// damage removes nothing.
func (m *Match) sweepDeaths() {
	for {
		removed := false
		for idx, side := range m.players {
			for i := 0; i < len(side.Field); {
				c := side.Field[i]
				if c.Health > 0 {
					i++
					continue
				}
				side.removeFromField(i)
				m.resolveDeath(idx, c)
				removed = true
			}
		}
		if !removed {
			break
		}
	}

	m.players[0].RecomputeSpellPower()
	m.players[1].RecomputeSpellPower()
}

// resolveDeath fires a dead creature's death trigger and moves it to
// its owner's graveyard.
func (m *Match) resolveDeath(ownerIdx int, c *Card) {
	owner := m.player(ownerIdx)

	switch c.Ability.Keyword {
	case catalog.KeywordDeathrattleDraw:
		owner.Draw(c.Ability.Amount)
	case catalog.KeywordResurrect:
		if len(owner.Hand) < m.rules.MaxHandSize {
			owner.Hand = append(owner.Hand, c.Clone())
		}
	}

	owner.Graveyard = append(owner.Graveyard, c)
	m.appendLog("%s died", c.Name)
}
