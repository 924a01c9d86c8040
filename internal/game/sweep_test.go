package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepIsIdempotent(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Grizzly", 2, 2, 2, ""))
	hurt := putCreature(m, 1, creatureTpl("Golem", 4, 3, 5, ""))
	hurt.TakeDamage(5)

	m.sweepDeaths()
	require.Len(t, m.player(1).Field, 0)
	require.Len(t, m.player(0).Field, 1)

	// A second sweep with no intervening damage removes nothing.
	m.sweepDeaths()
	assert.Len(t, m.player(0).Field, 1)
	assert.Len(t, m.player(1).Graveyard, 1)
}

func TestDeathrattleDrawFiresOnDeath(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	rattler := putCreature(m, 1, creatureTpl("Loot Hoarder", 2, 2, 1, "Deathrattle: Draw a card"))
	rattler.TakeDamage(1)

	handBefore := len(m.player(1).Hand)
	m.sweepDeaths()

	assert.Len(t, m.player(1).Hand, handBefore+1, "owner drew from the deathrattle")
	assert.Len(t, m.player(1).Graveyard, 1)
}

func TestPhoenixResurrectsIntoHand(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	phoenix := putCreature(m, 1, creatureTpl("Phoenix", 4, 4, 3, "Resurrect"))
	phoenix.TakeDamage(3)

	handBefore := len(m.player(1).Hand)
	m.sweepDeaths()

	owner := m.player(1)
	assert.Len(t, owner.Field, 0, "removed from the field")
	assert.Len(t, owner.Graveyard, 1, "original rests in the graveyard")
	require.Len(t, owner.Hand, handBefore+1)

	clone := owner.Hand[len(owner.Hand)-1]
	assert.Equal(t, "Phoenix", clone.Name)
	assert.Equal(t, 3, clone.Health, "clone has full health")
	assert.NotEqual(t, phoenix.InstanceID, clone.InstanceID)
}

func TestResurrectSkippedWhenHandFull(t *testing.T) {
	m := newTestMatch(t, nil, nil)
	owner := m.player(1)

	for len(owner.Hand) < DefaultRules().MaxHandSize {
		owner.Hand = append(owner.Hand, NewCard(creatureTpl("Filler", 1, 1, 1, "")))
	}

	phoenix := putCreature(m, 1, creatureTpl("Phoenix", 4, 4, 3, "Resurrect"))
	phoenix.TakeDamage(3)
	m.sweepDeaths()

	assert.Len(t, owner.Hand, DefaultRules().MaxHandSize, "no clone past hand capacity")
	assert.Len(t, owner.Graveyard, 1)
}

func TestSweepRecomputesSpellPower(t *testing.T) {
	m := newTestMatch(t, nil, nil)
	p := m.player(0)

	mage := putCreature(m, 0, creatureTpl("Apprentice", 2, 1, 2, "Spell Power +2"))
	require.Equal(t, 2, p.SpellPower)

	mage.TakeDamage(2)
	m.sweepDeaths()
	assert.Equal(t, 0, p.SpellPower)
}

func TestSimultaneousLethalIsADraw(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	m.players[0].Health = 0
	m.players[1].Health = 0
	m.checkGameOver()

	over, winner := m.Over()
	require.True(t, over)
	assert.Nil(t, winner, "both dead in the same event is a draw")
}

func TestGameOverLatches(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	m.players[1].Health = 0
	m.checkGameOver()
	over, winner := m.Over()
	require.True(t, over)
	require.NotNil(t, winner)
	assert.Equal(t, 0, *winner)

	// A later health change cannot reopen or rewrite the result.
	m.players[0].Health = 0
	m.checkGameOver()
	_, winner = m.Over()
	require.NotNil(t, winner)
	assert.Equal(t, 0, *winner)
}
