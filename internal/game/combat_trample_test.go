package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrampleOverflowHitsFace(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("War Beast", 6, 6, 6, "Trample"))
	putTappedCreature(m, 1, creatureTpl("Rat", 1, 1, 2, ""))

	require.True(t, m.ProcessAttack(0, 0, 0).OK)

	assert.Len(t, m.player(1).Field, 0)
	assert.Equal(t, 26, m.player(1).Health, "4 excess damage carried through")
}

func TestTrampleExactLethalNoOverflow(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("War Beast", 6, 3, 6, "Trample"))
	putTappedCreature(m, 1, creatureTpl("Grizzly", 2, 2, 3, ""))

	require.True(t, m.ProcessAttack(0, 0, 0).OK)

	assert.Len(t, m.player(1).Field, 0)
	assert.Equal(t, 30, m.player(1).Health, "no excess, no face damage")
}

func TestTrampleBlockedByDivineShield(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("War Beast", 6, 6, 6, "Trample"))
	wall := putTappedCreature(m, 1, creatureTpl("Squire", 1, 1, 2, ""))
	wall.SetStatus(StatusDivineShield)

	require.True(t, m.ProcessAttack(0, 0, 0).OK)

	assert.Equal(t, 2, wall.Health)
	assert.Equal(t, 30, m.player(1).Health, "absorbed hit tramples nothing")
}

func TestTrampleOverflowCanWinGame(t *testing.T) {
	m := newTestMatch(t, nil, nil)
	m.player(1).Health = 3

	putCreature(m, 0, creatureTpl("War Beast", 6, 6, 6, "Trample"))
	putTappedCreature(m, 1, creatureTpl("Rat", 1, 1, 1, ""))

	require.True(t, m.ProcessAttack(0, 0, 0).OK)

	over, winner := m.Over()
	require.True(t, over)
	require.NotNil(t, winner)
	assert.Equal(t, 0, *winner)
}
