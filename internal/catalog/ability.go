package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword identifies a parsed ability. The free-form ability text on a
// card template is parsed exactly once, at catalog load, into one of
// these variants; the engine never inspects rules text at runtime.
type Keyword int

const (
	KeywordNone Keyword = iota

	// Static creature keywords.
	KeywordTaunt
	KeywordDivineShield
	KeywordStealth
	KeywordSpellShield
	KeywordVigilance
	KeywordRush
	KeywordCharge
	KeywordWindfury
	KeywordDoubleStrike
	KeywordFirstStrike
	KeywordEnrage
	KeywordRegenerate
	KeywordBurn
	KeywordFlying
	KeywordReach
	KeywordTrample
	KeywordLifesteal
	KeywordPoison
	KeywordFreezeEnemy
	KeywordSpellPower
	KeywordImmune

	// Enter-play triggers.
	KeywordBattlecryDraw
	KeywordBattlecryDamage
	KeywordBattlecryAOE
	KeywordBattlecryToken

	// Death triggers.
	KeywordDeathrattleDraw
	KeywordResurrect

	// Spell effects.
	KeywordSpellDamage
	KeywordSpellRestore
	KeywordSpellMassBuff
	KeywordSpellDraw

	// Cost modifiers.
	KeywordCostScaling
)

var keywordNames = map[Keyword]string{
	KeywordNone:             "None",
	KeywordTaunt:            "Taunt",
	KeywordDivineShield:     "DivineShield",
	KeywordStealth:          "Stealth",
	KeywordSpellShield:      "SpellShield",
	KeywordVigilance:        "Vigilance",
	KeywordRush:             "Rush",
	KeywordCharge:           "Charge",
	KeywordWindfury:         "Windfury",
	KeywordDoubleStrike:     "DoubleStrike",
	KeywordFirstStrike:      "FirstStrike",
	KeywordEnrage:           "Enrage",
	KeywordRegenerate:       "Regenerate",
	KeywordBurn:             "Burn",
	KeywordFlying:           "Flying",
	KeywordReach:            "Reach",
	KeywordTrample:          "Trample",
	KeywordLifesteal:        "Lifesteal",
	KeywordPoison:           "Poison",
	KeywordFreezeEnemy:      "FreezeEnemy",
	KeywordSpellPower:       "SpellPower",
	KeywordImmune:           "Immune",
	KeywordBattlecryDraw:    "BattlecryDraw",
	KeywordBattlecryDamage:  "BattlecryDamage",
	KeywordBattlecryAOE:     "BattlecryAOE",
	KeywordBattlecryToken:   "BattlecryToken",
	KeywordDeathrattleDraw:  "DeathrattleDraw",
	KeywordResurrect:        "Resurrect",
	KeywordSpellDamage:      "SpellDamage",
	KeywordSpellRestore:     "SpellRestore",
	KeywordSpellMassBuff:    "SpellMassBuff",
	KeywordSpellDraw:        "SpellDraw",
	KeywordCostScaling:      "CostScaling",
}

func (k Keyword) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Ability is the structured form of a card's rules text. Amount carries
// the keyword-specific magnitude (spell damage, draw count, buff delta,
// token count, spell power bonus). Freezes marks damage spells that also
// freeze a surviving creature target.
type Ability struct {
	Keyword Keyword
	Amount  int
	Freezes bool
}

// IsNone reports whether the ability is absent.
func (a Ability) IsNone() bool { return a.Keyword == KeywordNone }

var numberRe = regexp.MustCompile(`\d+`)

// firstNumber extracts the first integer from text, or def if none.
func firstNumber(text string, def int) int {
	m := numberRe.FindString(text)
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def
	}
	return n
}

// keyword synonym table for plain one-word abilities.
var staticKeywords = map[string]Keyword{
	"taunt":         KeywordTaunt,
	"divine shield": KeywordDivineShield,
	"stealth":       KeywordStealth,
	"spell shield":  KeywordSpellShield,
	"vigilance":     KeywordVigilance,
	"rush":          KeywordRush,
	"charge":        KeywordCharge,
	"quick":         KeywordCharge,
	"haste":         KeywordCharge,
	"windfury":      KeywordWindfury,
	"double strike": KeywordDoubleStrike,
	"first strike":  KeywordFirstStrike,
	"enrage":        KeywordEnrage,
	"regenerate":    KeywordRegenerate,
	"burn":          KeywordBurn,
	"flying":        KeywordFlying,
	"reach":         KeywordReach,
	"trample":       KeywordTrample,
	"lifesteal":     KeywordLifesteal,
	"lifelink":      KeywordLifesteal,
	"poison":        KeywordPoison,
	"deathtouch":    KeywordPoison,
	"freeze enemy":  KeywordFreezeEnemy,
	"immune":        KeywordImmune,
	"resurrect":     KeywordResurrect,
}

// ParseAbility turns raw ability text into its structured form. Unknown
// or empty text yields a None ability rather than an error: a card with
// text the parser does not recognize is still playable as a vanilla card.
func ParseAbility(text string, cardType CardType) Ability {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Ability{}
	}

	if kw, ok := staticKeywords[normalized]; ok {
		return Ability{Keyword: kw}
	}

	if cardType == TypeSpell {
		return parseSpellAbility(normalized)
	}
	return parseCreatureAbility(normalized)
}

func parseSpellAbility(text string) Ability {
	switch {
	case strings.Contains(text, "damage"):
		return Ability{
			Keyword: KeywordSpellDamage,
			Amount:  firstNumber(text, 1),
			Freezes: strings.Contains(text, "freeze"),
		}
	case strings.Contains(text, "restore") || strings.Contains(text, "heal"):
		return Ability{Keyword: KeywordSpellRestore, Amount: firstNumber(text, 1)}
	case strings.Contains(text, "+") && strings.Contains(text, "/"):
		return Ability{Keyword: KeywordSpellMassBuff, Amount: firstNumber(text, 1)}
	case strings.Contains(text, "draw"):
		return Ability{Keyword: KeywordSpellDraw, Amount: firstNumber(text, 1)}
	case strings.Contains(text, "costs") && strings.Contains(text, "less"):
		return Ability{Keyword: KeywordCostScaling}
	}
	return Ability{}
}

func parseCreatureAbility(text string) Ability {
	switch {
	case strings.Contains(text, "spell power") || strings.Contains(text, "spell damage"):
		return Ability{Keyword: KeywordSpellPower, Amount: firstNumber(text, 1)}
	case strings.Contains(text, "deathrattle") && strings.Contains(text, "draw"):
		return Ability{Keyword: KeywordDeathrattleDraw, Amount: firstNumber(text, 1)}
	case strings.Contains(text, "battlecry"):
		return parseBattlecry(text)
	case strings.Contains(text, "freeze"):
		return Ability{Keyword: KeywordFreezeEnemy}
	case strings.Contains(text, "costs") && strings.Contains(text, "less"):
		return Ability{Keyword: KeywordCostScaling}
	}
	return Ability{}
}

func parseBattlecry(text string) Ability {
	switch {
	case strings.Contains(text, "draw"):
		return Ability{Keyword: KeywordBattlecryDraw, Amount: firstNumber(text, 1)}
	case strings.Contains(text, "all enemy") || strings.Contains(text, "enemy creatures"):
		return Ability{Keyword: KeywordBattlecryAOE, Amount: firstNumber(text, 2)}
	case strings.Contains(text, "damage"):
		return Ability{Keyword: KeywordBattlecryDamage, Amount: firstNumber(text, 2)}
	case strings.Contains(text, "summon"):
		return Ability{Keyword: KeywordBattlecryToken, Amount: firstNumber(text, 2)}
	}
	return Ability{}
}
