package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Enescyc/survival-game-online/internal"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
	player_name TEXT PRIMARY KEY,
	score       INTEGER NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresLeaderboard mirrors the in-memory leaderboard into Postgres so best
// scores survive restarts. One row per player name, holding their best score.
type PostgresLeaderboard struct {
	pool *pgxpool.Pool
}

func NewPostgresLeaderboard(ctx context.Context, databaseURL string) (*PostgresLeaderboard, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating leaderboard table: %w", err)
	}
	return &PostgresLeaderboard{pool: pool}, nil
}

func (p *PostgresLeaderboard) Load(ctx context.Context, limit int) ([]internal.LeaderboardEntry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT player_name, score FROM leaderboard ORDER BY score DESC, player_name LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]internal.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e internal.LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.Score); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Upsert stores the score for a name, keeping the row's existing score when
// it is already higher. Same best-score policy as the in-memory board.
func (p *PostgresLeaderboard) Upsert(ctx context.Context, name string, score int) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO leaderboard (player_name, score) VALUES ($1, $2)
		ON CONFLICT (player_name) DO UPDATE
		SET score = EXCLUDED.score, updated_at = now()
		WHERE leaderboard.score < EXCLUDED.score`, name, score)
	if err != nil {
		return fmt.Errorf("upserting leaderboard entry %q: %w", name, err)
	}
	return nil
}

func (p *PostgresLeaderboard) Close() {
	p.pool.Close()
}
