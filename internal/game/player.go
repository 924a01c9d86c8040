package game

import (
	"github.com/duelforge/duel-server/internal/catalog"
)

// Rules holds the engine tunables for one match.
type Rules struct {
	StartingHealth int
	StartingHand   int
	MaxHandSize    int
	MaxFieldSize   int
	MaxMana        int
	LogSize        int
}

// DefaultRules returns the classic rule set.
func DefaultRules() Rules {
	return Rules{
		StartingHealth: 30,
		StartingHand:   5,
		MaxHandSize:    10,
		MaxFieldSize:   7,
		MaxMana:        10,
		LogSize:        20,
	}
}

// GameData aggregates per-player match statistics handed to the result
// store at game end.
type GameData struct {
	DamageDealt int `json:"damageDealt"`
	DamageTaken int `json:"damageTaken"`
	CardsPlayed int `json:"cardsPlayed"`
	ManaSpent   int `json:"manaSpent"`
}

// Player is one side of a match: its zones and resources.
type Player struct {
	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int

	Hand      []*Card
	Deck      []*Card
	Field     []*Card
	Graveyard []*Card

	SpellsCast int
	SpellPower int

	Stats GameData

	rules Rules
}

// newPlayer builds a player with an instantiated deck. The deck order
// is taken as given; shuffling is the deck supplier's concern.
func newPlayer(deck []catalog.Template, rules Rules) *Player {
	p := &Player{
		Health:    rules.StartingHealth,
		MaxHealth: rules.StartingHealth,
		rules:     rules,
	}
	for _, tpl := range deck {
		p.Deck = append(p.Deck, NewCard(tpl))
	}
	return p
}

// Draw moves up to n cards from deck to hand. Drawing from an empty
// deck or into a full hand is a silent no-op, never an error.
func (p *Player) Draw(n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 || len(p.Hand) >= p.rules.MaxHandSize {
			break
		}
		card := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Hand = append(p.Hand, card)
		drawn++
	}
	return drawn
}

// Heal restores health, clamped to MaxHealth.
func (p *Player) Heal(amount int) {
	if amount <= 0 {
		return
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// RecomputeSpellPower rebuilds the derived spell power bonus from the
// creatures currently on the field. Called after every field change.
func (p *Player) RecomputeSpellPower() {
	total := 0
	for _, c := range p.Field {
		if c.HasKeyword(catalog.KeywordSpellPower) {
			total += c.Ability.Amount
		}
	}
	p.SpellPower = total
}

// removeFromField detaches the card at index i from the field.
func (p *Player) removeFromField(i int) *Card {
	card := p.Field[i]
	p.Field = append(p.Field[:i], p.Field[i+1:]...)
	return card
}

// fieldHasTaunt reports whether any field creature carries Taunt.
func (p *Player) fieldHasTaunt() bool {
	for _, c := range p.Field {
		if c.Has(StatusTaunt) {
			return true
		}
	}
	return false
}
