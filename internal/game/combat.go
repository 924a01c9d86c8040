package game

import (
	"github.com/duelforge/duel-server/internal/catalog"
)

// FaceTarget addresses the defending player instead of a creature.
const FaceTarget = -1

// ProcessAttack resolves an attack by the acting player's creature at
// attackerIdx against the opposing creature at targetIdx, or against
// the opposing player when targetIdx is FaceTarget. The legality gate
// is evaluated in order and the first failure aborts with no mutation.
func (m *Match) ProcessAttack(playerIdx, attackerIdx, targetIdx int) ActionResult {
	if m.gameOver {
		return m.reject("game is over")
	}
	if playerIdx != m.current {
		return m.reject("not player %d's turn", playerIdx)
	}

	p := m.player(playerIdx)
	opp := m.opponentOf(playerIdx)

	if attackerIdx < 0 || attackerIdx >= len(p.Field) {
		return m.reject("attacker index %d out of range", attackerIdx)
	}
	attacker := p.Field[attackerIdx]
	if !attacker.CanAttack() {
		return m.reject("%s cannot attack", attacker.Name)
	}

	if targetIdx == FaceTarget {
		if attacker.Has(StatusCreaturesOnly) {
			return m.reject("%s can only attack creatures this turn", attacker.Name)
		}
	} else {
		if targetIdx < 0 || targetIdx >= len(opp.Field) {
			return m.reject("target index %d out of range", targetIdx)
		}
	}

	// Taunt creatures must absorb attacks before anything else is legal.
	if opp.fieldHasTaunt() {
		if targetIdx == FaceTarget || !opp.Field[targetIdx].Has(StatusTaunt) {
			return m.reject("a Taunt creature is in the way")
		}
	}

	if targetIdx != FaceTarget {
		target := opp.Field[targetIdx]
		// Defenders must be exposed: an untapped creature without Taunt
		// cannot be singled out.
		if !target.Has(StatusTapped) && !target.Has(StatusTaunt) {
			return m.reject("%s is not a legal target", target.Name)
		}
		if target.Has(StatusStealth) {
			return m.reject("%s is hidden by stealth", target.Name)
		}
		if target.HasKeyword(catalog.KeywordFlying) &&
			!attacker.HasKeyword(catalog.KeywordFlying) && !attacker.HasKeyword(catalog.KeywordReach) {
			return m.reject("%s is flying and out of reach", target.Name)
		}
	}

	attacker.ClearStatus(StatusStealth)
	attacker.MarkAttacked()

	if targetIdx == FaceTarget {
		m.resolveFaceAttack(playerIdx, attacker)
	} else {
		m.resolveCreatureCombat(playerIdx, attacker, opp.Field[targetIdx])
	}

	m.sweepDeaths()

	return accepted()
}

// resolveFaceAttack applies the attacker's damage to the defending
// player's health.
func (m *Match) resolveFaceAttack(playerIdx int, attacker *Card) {
	m.appendLog("%s attacks player %d", attacker.Name, m.opponentIndex(playerIdx))

	if attacker.HasKeyword(catalog.KeywordLifesteal) {
		m.player(playerIdx).Heal(attacker.Attack)
	}
	m.damagePlayer(playerIdx, m.opponentIndex(playerIdx), attacker.Attack)
}

// resolveCreatureCombat runs the damage exchange between attacker and
// target. First Strike on exactly one side lets it deal damage first,
// with retaliation only if the defender survives; otherwise both sides
// deal damage simultaneously.
func (m *Match) resolveCreatureCombat(playerIdx int, attacker, target *Card) {
	m.appendLog("%s attacks %s", attacker.Name, target.Name)

	if target.Has(StatusImmune) || target.Has(StatusTempImmune) {
		// The attack is fully absorbed; neither side takes damage.
		return
	}

	attackerStrikes := attacker.HasKeyword(catalog.KeywordFirstStrike)
	targetStrikes := target.HasKeyword(catalog.KeywordFirstStrike)

	switch {
	case attackerStrikes && !targetStrikes:
		m.strike(playerIdx, attacker, target)
		if target.Health > 0 {
			m.counterStrike(target, attacker)
		}
	case targetStrikes && !attackerStrikes:
		m.counterStrike(target, attacker)
		if attacker.Health > 0 {
			m.strike(playerIdx, attacker, target)
		}
	default:
		m.strike(playerIdx, attacker, target)
		m.counterStrike(target, attacker)
	}
}

// strike applies the attacker's damage to the target, then the
// attacker's on-hit effects: instant kill, trample overflow, freeze,
// lifesteal.
func (m *Match) strike(playerIdx int, attacker, target *Card) {
	healthBefore := target.Health
	dealt := target.TakeDamage(attacker.Attack)

	if attacker.Has(StatusInstantKill) && dealt > 0 {
		target.Health = 0
	}

	if attacker.HasKeyword(catalog.KeywordTrample) && dealt > 0 {
		if overflow := attacker.Attack - healthBefore; overflow > 0 {
			m.damagePlayer(playerIdx, m.opponentIndex(playerIdx), overflow)
		}
	}

	if attacker.HasKeyword(catalog.KeywordFreezeEnemy) && target.Health > 0 {
		target.SetStatus(StatusFrozen)
	}

	if attacker.HasKeyword(catalog.KeywordLifesteal) && dealt > 0 {
		heal := dealt
		if heal > target.MaxHealth {
			heal = target.MaxHealth
		}
		m.player(playerIdx).Heal(heal)
	}
}

// counterStrike applies the defender's retaliation damage.
func (m *Match) counterStrike(target, attacker *Card) {
	dealt := attacker.TakeDamage(target.Attack)
	if target.Has(StatusInstantKill) && dealt > 0 {
		attacker.Health = 0
	}
}
