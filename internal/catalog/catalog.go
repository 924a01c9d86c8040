package catalog

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CardType distinguishes creatures from spells.
type CardType string

const (
	TypeCreature CardType = "creature"
	TypeSpell    CardType = "spell"
)

// Rarity is informational only; the engine never branches on it.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Template is the immutable catalog entry for a card. Runtime card
// instances are stamped from a template when a deck is built or a
// token/clone is generated.
type Template struct {
	Name        string   `mapstructure:"name" json:"name"`
	Cost        int      `mapstructure:"cost" json:"cost"`
	Type        CardType `mapstructure:"type" json:"type"`
	Attack      int      `mapstructure:"attack" json:"attack"`
	Health      int      `mapstructure:"health" json:"health"`
	AbilityText string   `mapstructure:"ability" json:"ability"`
	Rarity      Rarity   `mapstructure:"rarity" json:"rarity"`

	// Ability is the parsed form of AbilityText, filled in at load.
	Ability Ability `mapstructure:"-" json:"-"`
}

// Catalog is the read-only card template lookup used by the engine.
// Content management for the catalog lives outside this process; the
// catalog is loaded once at startup and never mutated.
type Catalog struct {
	templates map[string]Template
	logger    *zap.Logger
}

// New builds a catalog from the given templates, parsing every ability
// text into its structured form. Duplicate names are rejected.
func New(templates []Template, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	byName := make(map[string]Template, len(templates))
	for _, tpl := range templates {
		if tpl.Name == "" {
			return nil, fmt.Errorf("catalog template with empty name")
		}
		key := strings.ToLower(tpl.Name)
		if _, dup := byName[key]; dup {
			return nil, fmt.Errorf("duplicate catalog template %q", tpl.Name)
		}
		if tpl.Type != TypeCreature && tpl.Type != TypeSpell {
			return nil, fmt.Errorf("template %q has unknown type %q", tpl.Name, tpl.Type)
		}
		tpl.Ability = ParseAbility(tpl.AbilityText, tpl.Type)
		byName[key] = tpl
	}

	logger.Info("card catalog loaded", zap.Int("templates", len(byName)))

	return &Catalog{templates: byName, logger: logger}, nil
}

// LoadFile reads card templates from a YAML file with a top-level
// `cards:` list and builds a catalog from them.
func LoadFile(path string, logger *zap.Logger) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var templates []Template
	if err := v.UnmarshalKey("cards", &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog file %s: %w", path, err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no cards", path)
	}

	return New(templates, logger)
}

// Get returns the template for a card name, case-insensitively.
func (c *Catalog) Get(name string) (Template, bool) {
	tpl, ok := c.templates[strings.ToLower(name)]
	return tpl, ok
}

// Size returns the number of templates in the catalog.
func (c *Catalog) Size() int { return len(c.templates) }

// Token returns the template for the zero-cost 1/1 token creature
// summoned by token battlecries. Tokens are not catalog entries; they
// exist only as runtime instances.
func Token() Template {
	return Template{
		Name:   "Recruit",
		Cost:   0,
		Type:   TypeCreature,
		Attack: 1,
		Health: 1,
		Rarity: RarityCommon,
	}
}
