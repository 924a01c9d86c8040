package game

// CardView is the wire representation of one card instance.
type CardView struct {
	InstanceID  string `json:"instanceId"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
	Attack      int    `json:"attack"`
	Health      int    `json:"health"`
	MaxHealth   int    `json:"maxHealth"`
	Ability     string `json:"ability"`
	Tapped      bool   `json:"tapped"`
	Frozen      bool   `json:"frozen"`
	Stealth     bool   `json:"stealth"`
	Shielded    bool   `json:"shielded"`
	SpellShield bool   `json:"spellShield"`
	Taunt       bool   `json:"taunt"`
}

// PlayerView is the wire representation of one side. The opponent's
// hand is reported as a count only.
type PlayerView struct {
	Health     int        `json:"health"`
	MaxHealth  int        `json:"maxHealth"`
	Mana       int        `json:"mana"`
	MaxMana    int        `json:"maxMana"`
	DeckCount  int        `json:"deckCount"`
	HandCount  int        `json:"handCount"`
	Hand       []CardView `json:"hand,omitempty"`
	Field      []CardView `json:"field"`
	Graveyard  int        `json:"graveyardCount"`
	SpellPower int        `json:"spellPower"`
}

// MatchView is a player-scoped snapshot of the match, safe to send to
// that player: the opponent's hidden zones are reduced to counts.
type MatchView struct {
	MatchID     string     `json:"matchId"`
	You         PlayerView `json:"you"`
	Opponent    PlayerView `json:"opponent"`
	CurrentTurn int        `json:"currentTurn"`
	TurnNumber  int        `json:"turnNumber"`
	YourTurn    bool       `json:"yourTurn"`
	GameOver    bool       `json:"gameOver"`
	Winner      *int       `json:"winner"`
	Log         []LogEntry `json:"log"`
}

// View builds the snapshot visible to the given player.
func (m *Match) View(playerIdx int) MatchView {
	return MatchView{
		MatchID:     m.ID,
		You:         buildPlayerView(m.player(playerIdx), true),
		Opponent:    buildPlayerView(m.opponentOf(playerIdx), false),
		CurrentTurn: m.current,
		TurnNumber:  m.turnNumber,
		YourTurn:    m.current == playerIdx,
		GameOver:    m.gameOver,
		Winner:      m.winner,
		Log:         m.Log(),
	}
}

func buildPlayerView(p *Player, includeHand bool) PlayerView {
	view := PlayerView{
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Mana:       p.Mana,
		MaxMana:    p.MaxMana,
		DeckCount:  len(p.Deck),
		HandCount:  len(p.Hand),
		Field:      buildCardViews(p.Field),
		Graveyard:  len(p.Graveyard),
		SpellPower: p.SpellPower,
	}
	if includeHand {
		view.Hand = buildCardViews(p.Hand)
	}
	return view
}

func buildCardViews(cards []*Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, CardView{
			InstanceID:  c.InstanceID,
			Name:        c.Name,
			Cost:        c.Cost,
			Type:        string(c.Type),
			Attack:      c.Attack,
			Health:      c.Health,
			MaxHealth:   c.MaxHealth,
			Ability:     c.Ability.Keyword.String(),
			Tapped:      c.Has(StatusTapped),
			Frozen:      c.Has(StatusFrozen),
			Stealth:     c.Has(StatusStealth),
			Shielded:    c.Has(StatusDivineShield),
			SpellShield: c.Has(StatusSpellShield),
			Taunt:       c.Has(StatusTaunt),
		})
	}
	return views
}
