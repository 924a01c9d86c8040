package game

import (
	"github.com/google/uuid"

	"github.com/duelforge/duel-server/internal/catalog"
)

// enrageBonus is the permanent attack gain when an Enrage creature
// survives damage for the first time.
const enrageBonus = 2

// Card is one card instance inside a match. Its InstanceID is scoped to
// the match and is distinct from any persistent collection identity.
// A card belongs to exactly one zone (hand, deck, field, graveyard) at
// a time; zone membership is owned by Player, not by the card itself.
type Card struct {
	InstanceID string
	Name       string
	Cost       int
	Type       catalog.CardType
	Attack     int
	Health     int
	MaxHealth  int
	Ability    catalog.Ability
	Rarity     catalog.Rarity

	status Status
}

// NewCard stamps a fresh card instance from a catalog template.
func NewCard(tpl catalog.Template) *Card {
	return &Card{
		InstanceID: uuid.NewString(),
		Name:       tpl.Name,
		Cost:       tpl.Cost,
		Type:       tpl.Type,
		Attack:     tpl.Attack,
		Health:     tpl.Health,
		MaxHealth:  tpl.Health,
		Ability:    tpl.Ability,
		Rarity:     tpl.Rarity,
	}
}

// Has reports whether the card currently carries the given status.
func (c *Card) Has(s Status) bool { return c.status.Has(s) }

// SetStatus adds a status effect to the card.
func (c *Card) SetStatus(s Status) { c.status = c.status.With(s) }

// ClearStatus removes a status effect from the card.
func (c *Card) ClearStatus(s Status) { c.status = c.status.Without(s) }

// HasKeyword reports whether the card's parsed ability is the given keyword.
func (c *Card) HasKeyword(k catalog.Keyword) bool { return c.Ability.Keyword == k }

// TakeDamage applies amount damage to the card and returns the damage
// actually dealt. Non-positive amounts and immunity deal nothing; an
// active divine shield absorbs the whole hit and is consumed. An Enrage
// creature that survives real damage gains attack, once per instance.
func (c *Card) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	if c.Has(StatusImmune) || c.Has(StatusTempImmune) {
		return 0
	}
	if c.Has(StatusDivineShield) {
		c.ClearStatus(StatusDivineShield)
		return 0
	}

	dealt := amount
	if dealt > c.Health {
		dealt = c.Health
	}
	c.Health -= dealt

	if c.HasKeyword(catalog.KeywordEnrage) && dealt > 0 && c.Health > 0 && !c.Has(StatusEnraged) {
		c.Attack += enrageBonus
		c.SetStatus(StatusEnraged)
	}

	return dealt
}

// CanAttack reports whether the card may declare an attack right now.
func (c *Card) CanAttack() bool {
	return !c.Has(StatusTapped) && !c.Has(StatusFrozen) && !c.Has(StatusAttackedThisTurn)
}

// MarkAttacked records that the card attacked. It taps the card unless
// it has Vigilance. Windfury and Double Strike each grant exactly one
// extra attack per turn: the first attack untaps the card and clears
// the attacked flag, consuming the keyword's per-turn used flag; the
// second attack taps normally.
func (c *Card) MarkAttacked() {
	c.SetStatus(StatusAttackedThisTurn)

	switch {
	case c.HasKeyword(catalog.KeywordWindfury) && !c.Has(StatusWindfuryUsed):
		c.SetStatus(StatusWindfuryUsed)
		c.ClearStatus(StatusAttackedThisTurn | StatusTapped)
		return
	case c.HasKeyword(catalog.KeywordDoubleStrike) && !c.Has(StatusDoubleStrikeUsed):
		c.SetStatus(StatusDoubleStrikeUsed)
		c.ClearStatus(StatusAttackedThisTurn | StatusTapped)
		return
	}

	if !c.Has(StatusVigilance) {
		c.SetStatus(StatusTapped)
	}
}

// ResetForTurn readies the card at the start of its controller's turn.
// A frozen card thaws instead of untapping, so freezing costs exactly
// one turn of readiness. Regenerate restores the card to full health.
func (c *Card) ResetForTurn() {
	if c.Has(StatusFrozen) {
		c.ClearStatus(StatusFrozen)
	} else {
		c.ClearStatus(StatusTapped)
	}

	c.status = c.status.Without(perTurnStatuses)

	if c.HasKeyword(catalog.KeywordRegenerate) {
		c.Health = c.MaxHealth
	}
}

// Clone produces a new instance from the card's base stats: fresh
// identity, full health, no status effects carried over.
func (c *Card) Clone() *Card {
	return &Card{
		InstanceID: uuid.NewString(),
		Name:       c.Name,
		Cost:       c.Cost,
		Type:       c.Type,
		Attack:     c.baseAttack(),
		Health:     c.MaxHealth,
		MaxHealth:  c.MaxHealth,
		Ability:    c.Ability,
		Rarity:     c.Rarity,
	}
}

// baseAttack strips the enrage bonus so clones start from printed stats.
func (c *Card) baseAttack() int {
	if c.Has(StatusEnraged) {
		return c.Attack - enrageBonus
	}
	return c.Attack
}
