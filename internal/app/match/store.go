package match

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL-backed match archive.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store bound to the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create validates and inserts a match record, returning it with the assigned
// id and timestamp.
func (s *Store) Create(ctx context.Context, m *Match) (*Match, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	query := `INSERT INTO matches (player_a, player_b, score_a, score_b, winner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, played_at`

	err := s.pool.QueryRow(ctx, query,
		m.PlayerA, m.PlayerB, m.ScoreA, m.ScoreB, m.WinnerID,
	).Scan(&m.ID, &m.PlayedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// ListByUser returns the newest matches the given user took part in, capped at
// HistoryLimit.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]*Match, error) {
	query := `SELECT id, player_a, player_b, score_a, score_b, winner_id, played_at
		FROM matches
		WHERE player_a = $1 OR player_b = $1
		ORDER BY played_at DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m := &Match{}
		if err := rows.Scan(&m.ID, &m.PlayerA, &m.PlayerB, &m.ScoreA, &m.ScoreB, &m.WinnerID, &m.PlayedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return matches, nil
}
