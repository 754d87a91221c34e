package message

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pongarena/internal/pkg/randx"
)

// Store is the PostgreSQL-backed chat archive.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store bound to the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Append validates and inserts a chat message, assigning it a fresh UUID.
func (s *Store) Append(ctx context.Context, m *Message) (*Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	m.ID = randx.MessageID()

	query := `INSERT INTO messages (id, room_code, sender_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING sent_at`

	err := s.pool.QueryRow(ctx, query, m.ID, m.RoomCode, m.SenderID, m.Body).Scan(&m.SentAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// History returns the last limit messages of a room in chronological order.
func (s *Store) History(ctx context.Context, roomCode string, limit int) ([]*Message, error) {
	limit = ClampLimit(limit)

	query := `SELECT id, room_code, sender_id, body, sent_at FROM (
			SELECT id, room_code, sender_id, body, sent_at
			FROM messages
			WHERE room_code = $1
			ORDER BY sent_at DESC
			LIMIT $2
		) latest
		ORDER BY sent_at ASC`

	rows, err := s.pool.Query(ctx, query, roomCode, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return messages, nil
}
