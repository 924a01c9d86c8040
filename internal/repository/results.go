package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/duelforge/duel-server/internal/game"
)

// ResultRepository writes match outcomes to the match_results table.
type ResultRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewResultRepository creates a result repository.
func NewResultRepository(pool *pgxpool.Pool, logger *zap.Logger) *ResultRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultRepository{pool: pool, logger: logger}
}

// EnsureSchema creates the match_results table if it does not exist.
func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS match_results (
			id           BIGSERIAL PRIMARY KEY,
			player_id    TEXT        NOT NULL,
			won          BOOLEAN     NOT NULL,
			damage_dealt INTEGER     NOT NULL,
			damage_taken INTEGER     NOT NULL,
			cards_played INTEGER     NOT NULL,
			mana_spent   INTEGER     NOT NULL,
			recorded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure match_results schema: %w", err)
	}
	return nil
}

// RecordResult stores one player's outcome and aggregate game data.
func (r *ResultRepository) RecordResult(ctx context.Context, playerID string, won bool, data game.GameData) error {
	const query = `
		INSERT INTO match_results (player_id, won, damage_dealt, damage_taken, cards_played, mana_spent)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.pool.Exec(ctx, query,
		playerID, won, data.DamageDealt, data.DamageTaken, data.CardsPlayed, data.ManaSpent,
	); err != nil {
		return fmt.Errorf("failed to record match result for %s: %w", playerID, err)
	}

	r.logger.Debug("recorded match result",
		zap.String("player_id", playerID),
		zap.Bool("won", won),
		zap.Int("damage_dealt", data.DamageDealt),
	)
	return nil
}
