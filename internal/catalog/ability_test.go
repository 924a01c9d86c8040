package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbilityStaticKeywords(t *testing.T) {
	tests := []struct {
		text string
		want Keyword
	}{
		{"Taunt", KeywordTaunt},
		{"Divine Shield", KeywordDivineShield},
		{"stealth", KeywordStealth},
		{"Vigilance", KeywordVigilance},
		{"Rush", KeywordRush},
		{"Charge", KeywordCharge},
		{"Quick", KeywordCharge},
		{"Haste", KeywordCharge},
		{"Windfury", KeywordWindfury},
		{"Double Strike", KeywordDoubleStrike},
		{"First Strike", KeywordFirstStrike},
		{"Enrage", KeywordEnrage},
		{"Regenerate", KeywordRegenerate},
		{"Burn", KeywordBurn},
		{"Flying", KeywordFlying},
		{"Reach", KeywordReach},
		{"Trample", KeywordTrample},
		{"Lifesteal", KeywordLifesteal},
		{"Lifelink", KeywordLifesteal},
		{"Poison", KeywordPoison},
		{"Deathtouch", KeywordPoison},
		{"Resurrect", KeywordResurrect},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseAbility(tt.text, TypeCreature)
			assert.Equal(t, tt.want, got.Keyword)
		})
	}
}

func TestParseAbilitySpells(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Ability
	}{
		{"damage", "Deal 4 damage", Ability{Keyword: KeywordSpellDamage, Amount: 4}},
		{"damage with freeze", "Deal 3 damage and freeze the target", Ability{Keyword: KeywordSpellDamage, Amount: 3, Freezes: true}},
		{"restore", "Restore 5 health to your hero", Ability{Keyword: KeywordSpellRestore, Amount: 5}},
		{"mass buff", "Give your creatures +1/+1", Ability{Keyword: KeywordSpellMassBuff, Amount: 1}},
		{"draw", "Draw 2 cards", Ability{Keyword: KeywordSpellDraw, Amount: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAbility(tt.text, TypeSpell)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAbilityBattlecries(t *testing.T) {
	draw := ParseAbility("Battlecry: Draw 2 cards", TypeCreature)
	assert.Equal(t, KeywordBattlecryDraw, draw.Keyword)
	assert.Equal(t, 2, draw.Amount)

	aoe := ParseAbility("Battlecry: Deal 2 damage to all enemy creatures", TypeCreature)
	assert.Equal(t, KeywordBattlecryAOE, aoe.Keyword)
	assert.Equal(t, 2, aoe.Amount)

	face := ParseAbility("Battlecry: Deal 2 damage to the enemy hero", TypeCreature)
	assert.Equal(t, KeywordBattlecryDamage, face.Keyword)

	token := ParseAbility("Battlecry: Summon 2 Recruits", TypeCreature)
	assert.Equal(t, KeywordBattlecryToken, token.Keyword)
	assert.Equal(t, 2, token.Amount)
}

func TestParseAbilityUnknownTextIsNone(t *testing.T) {
	assert.True(t, ParseAbility("", TypeCreature).IsNone())
	assert.True(t, ParseAbility("some flavor text", TypeCreature).IsNone())
}

func TestParseAbilitySpellPower(t *testing.T) {
	got := ParseAbility("Spell Power +2", TypeCreature)
	assert.Equal(t, KeywordSpellPower, got.Keyword)
	assert.Equal(t, 2, got.Amount)
}

func TestParseAbilityDeathrattle(t *testing.T) {
	got := ParseAbility("Deathrattle: Draw a card", TypeCreature)
	assert.Equal(t, KeywordDeathrattleDraw, got.Keyword)
	assert.Equal(t, 1, got.Amount)
}

func TestCatalogNew(t *testing.T) {
	templates := []Template{
		{Name: "Forest Wolf", Cost: 2, Type: TypeCreature, Attack: 3, Health: 2},
		{Name: "Fireball", Cost: 4, Type: TypeSpell, AbilityText: "Deal 6 damage"},
	}

	cat, err := New(templates, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Size())

	tpl, ok := cat.Get("fireball")
	require.True(t, ok)
	assert.Equal(t, KeywordSpellDamage, tpl.Ability.Keyword)
	assert.Equal(t, 6, tpl.Ability.Amount)
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	templates := []Template{
		{Name: "Forest Wolf", Cost: 2, Type: TypeCreature, Attack: 3, Health: 2},
		{Name: "forest wolf", Cost: 2, Type: TypeCreature, Attack: 3, Health: 2},
	}
	_, err := New(templates, nil)
	require.Error(t, err)
}

func TestTokenTemplate(t *testing.T) {
	tok := Token()
	assert.Equal(t, 0, tok.Cost)
	assert.Equal(t, 1, tok.Attack)
	assert.Equal(t, 1, tok.Health)
	assert.Equal(t, TypeCreature, tok.Type)
}
