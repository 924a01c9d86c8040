package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTauntWallBlocksFaceAndOtherCreatures(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Grizzly", 2, 2, 2, ""))
	bystander := putTappedCreature(m, 1, creatureTpl("Rat", 1, 1, 1, ""))
	guard := putTappedCreature(m, 1, creatureTpl("Shield Bearer", 1, 0, 4, "Taunt"))

	healthBefore := m.player(1).Health

	res := m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "face attack rejected behind taunt")
	assert.Equal(t, healthBefore, m.player(1).Health)

	res = m.ProcessAttack(0, 0, 0)
	assert.False(t, res.OK, "non-taunt creature rejected behind taunt")
	assert.Equal(t, 1, bystander.Health)

	require.True(t, m.ProcessAttack(0, 0, 1).OK, "the taunt creature itself is legal")
	assert.Equal(t, 2, guard.Health)
}

func TestShieldBearerAbsorbsWolf(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	wolf := putCreature(m, 0, creatureTpl("Forest Wolf", 2, 3, 2, ""))
	bearer := putTappedCreature(m, 1, creatureTpl("Shield Bearer", 1, 0, 4, "Taunt"))

	require.True(t, m.ProcessAttack(0, 0, 0).OK)

	assert.Equal(t, 1, bearer.Health)
	assert.Equal(t, 2, wolf.Health)
	assert.Len(t, m.player(0).Field, 1, "both survive")
	assert.Len(t, m.player(1).Field, 1)
}

func TestTauntOnBothSidesOnlyDefenderMatters(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Guard", 3, 2, 4, "Taunt"))
	putCreature(m, 1, creatureTpl("Guard", 3, 2, 4, "Taunt"))

	// The attacker's own taunt never restricts its attacks.
	require.True(t, m.ProcessAttack(0, 0, 0).OK)
}
