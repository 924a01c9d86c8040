package game

// Status is the set of status effects active on a card, stored as a
// bitmask so combinations stay cheap to copy and test in isolation.
type Status uint32

const (
	StatusTapped Status = 1 << iota
	StatusFrozen
	StatusAttackedThisTurn
	StatusDoubleStrikeUsed
	StatusWindfuryUsed
	StatusCreaturesOnly
	StatusStealth
	StatusDivineShield
	StatusSpellShield
	StatusVigilance
	StatusImmune
	StatusTempImmune
	StatusTaunt
	StatusInstantKill
	StatusEnraged
)

// perTurnStatuses are cleared by a creature's start-of-turn reset.
const perTurnStatuses = StatusAttackedThisTurn |
	StatusDoubleStrikeUsed |
	StatusWindfuryUsed |
	StatusCreaturesOnly |
	StatusTempImmune

// Has reports whether all bits in s are set.
func (st Status) Has(s Status) bool { return st&s == s }

// With returns the status set with s added.
func (st Status) With(s Status) Status { return st | s }

// Without returns the status set with s removed.
func (st Status) Without(s Status) Status { return st &^ s }
