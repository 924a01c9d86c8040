package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackLegalityGate(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	res := m.ProcessAttack(1, 0, FaceTarget)
	assert.False(t, res.OK, "not your turn")

	res = m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "no attacker at index")

	attacker := putCreature(m, 0, creatureTpl("Grizzly", 2, 2, 2, ""))
	attacker.SetStatus(StatusTapped)
	res = m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "tapped creature cannot attack")

	attacker.ClearStatus(StatusTapped)
	attacker.SetStatus(StatusFrozen)
	res = m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "frozen creature cannot attack")

	attacker.ClearStatus(StatusFrozen)
	res = m.ProcessAttack(0, 0, 5)
	assert.False(t, res.OK, "target index out of range")

	require.True(t, m.ProcessAttack(0, 0, FaceTarget).OK)
	assert.Equal(t, 28, m.player(1).Health)

	res = m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "already attacked this turn")
}

func TestRushRestrictedToCreatures(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Wolf Rider", 3, 3, 1, "Rush"))

	res := m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "rush cannot go face on entry turn")
	assert.Equal(t, 30, m.player(1).Health)

	putTappedCreature(m, 1, creatureTpl("Grizzly", 2, 2, 2, ""))
	assert.True(t, m.ProcessAttack(0, 0, 0).OK, "creatures are legal targets")
}

func TestUntappedNonTauntCannotBeTargeted(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Grizzly", 2, 2, 2, ""))
	defender := putCreature(m, 1, creatureTpl("Golem", 4, 3, 5, ""))
	defender.ClearStatus(StatusTapped)

	res := m.ProcessAttack(0, 0, 0)
	assert.False(t, res.OK, "defenders must be exposed")
	assert.Equal(t, 5, defender.Health)

	defender.SetStatus(StatusTapped)
	require.True(t, m.ProcessAttack(0, 0, 0).OK)
	assert.Equal(t, 3, defender.Health)
}

func TestStealthTargetRejected(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Grizzly", 2, 2, 2, ""))
	sneak := putTappedCreature(m, 1, creatureTpl("Shade", 3, 4, 3, "Stealth"))

	res := m.ProcessAttack(0, 0, 0)
	assert.False(t, res.OK)
	assert.Equal(t, 3, sneak.Health)
}

func TestAttackerLosesStealthOnAttack(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	sneak := putCreature(m, 0, creatureTpl("Shade", 3, 4, 3, "Stealth"))
	require.True(t, sneak.Has(StatusStealth))

	require.True(t, m.ProcessAttack(0, 0, FaceTarget).OK)
	assert.False(t, sneak.Has(StatusStealth))
}

func TestImmuneTargetAbsorbsAttack(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	attacker := putCreature(m, 0, creatureTpl("Grizzly", 2, 2, 2, ""))
	wall := putTappedCreature(m, 1, creatureTpl("Spirit", 5, 3, 4, ""))
	wall.SetStatus(StatusImmune)

	require.True(t, m.ProcessAttack(0, 0, 0).OK)
	assert.Equal(t, 4, wall.Health, "no damage to immune target")
	assert.Equal(t, 2, attacker.Health, "no retaliation either")
}

func TestFaceAttackChecksGameOver(t *testing.T) {
	m := newTestMatch(t, nil, nil)
	m.player(1).Health = 2

	putCreature(m, 0, creatureTpl("Golem", 4, 3, 5, ""))
	require.True(t, m.ProcessAttack(0, 0, FaceTarget).OK)

	over, winner := m.Over()
	require.True(t, over)
	require.NotNil(t, winner)
	assert.Equal(t, 0, *winner)
}

func TestWindfuryAttacksTwiceThroughResolver(t *testing.T) {
	m := newTestMatch(t, nil, nil)

	putCreature(m, 0, creatureTpl("Harpy", 5, 4, 5, "Windfury"))

	require.True(t, m.ProcessAttack(0, 0, FaceTarget).OK)
	require.True(t, m.ProcessAttack(0, 0, FaceTarget).OK)
	assert.Equal(t, 22, m.player(1).Health)

	res := m.ProcessAttack(0, 0, FaceTarget)
	assert.False(t, res.OK, "no third attack")
	assert.Equal(t, 22, m.player(1).Health)
}
