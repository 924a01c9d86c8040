package game

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/duelforge/duel-server/internal/catalog"
)

// creatureTpl builds a creature template with parsed ability text.
func creatureTpl(name string, cost, attack, health int, ability string) catalog.Template {
	return catalog.Template{
		Name:        name,
		Cost:        cost,
		Type:        catalog.TypeCreature,
		Attack:      attack,
		Health:      health,
		AbilityText: ability,
		Ability:     catalog.ParseAbility(ability, catalog.TypeCreature),
	}
}

// spellTpl builds a spell template with parsed ability text.
func spellTpl(name string, cost int, ability string) catalog.Template {
	return catalog.Template{
		Name:        name,
		Cost:        cost,
		Type:        catalog.TypeSpell,
		AbilityText: ability,
		Ability:     catalog.ParseAbility(ability, catalog.TypeSpell),
	}
}

// vanillaDeck returns n copies of a plain 2/2 for filling out decks.
func vanillaDeck(n int) []catalog.Template {
	deck := make([]catalog.Template, n)
	for i := range deck {
		deck[i] = creatureTpl("Grizzly", 2, 2, 2, "")
	}
	return deck
}

// newTestMatch creates a match with the given decks on top of a vanilla
// filler so opening draws never empty the deck unexpectedly.
func newTestMatch(t *testing.T, deck0, deck1 []catalog.Template) *Match {
	t.Helper()
	d0 := append(append([]catalog.Template{}, deck0...), vanillaDeck(10)...)
	d1 := append(append([]catalog.Template{}, deck1...), vanillaDeck(10)...)
	return NewMatch("test-match", d0, d1, DefaultRules(), zaptest.NewLogger(t))
}

// putCreature places a ready-to-act creature directly onto a side's
// field, applying its entry statuses the way playCreature does.
func putCreature(m *Match, side int, tpl catalog.Template) *Card {
	card := NewCard(tpl)
	m.playCreature(side, card)
	card.ClearStatus(StatusTapped)
	return card
}

// putTappedCreature places a creature that keeps summoning sickness.
func putTappedCreature(m *Match, side int, tpl catalog.Template) *Card {
	card := NewCard(tpl)
	m.playCreature(side, card)
	card.SetStatus(StatusTapped)
	return card
}

// giveCard puts a card instance into a side's hand and returns its
// hand index.
func giveCard(m *Match, side int, tpl catalog.Template) int {
	p := m.player(side)
	p.Hand = append(p.Hand, NewCard(tpl))
	return len(p.Hand) - 1
}
