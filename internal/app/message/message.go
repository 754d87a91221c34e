/*
Package message persists room chat messages and serves history queries.
*/
package message

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	// MaxBodyLength is the maximum chat message length in runes.
	MaxBodyLength = 2000

	// DefaultHistoryLimit is used when a history query does not specify one.
	DefaultHistoryLimit = 50

	// MaxHistoryLimit caps a single history query.
	MaxHistoryLimit = 200
)

// ErrEmptyBody and ErrBodyTooLong are returned by Validate.
var (
	ErrEmptyBody   = errors.New("empty message body")
	ErrBodyTooLong = errors.New("message body too long")
)

// Message is one chat entry scoped to a game room.
type Message struct {
	ID       string    `json:"id"`
	RoomCode string    `json:"roomCode"`
	SenderID int64     `json:"senderId"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// Validate checks the body bounds before a message is written.
func (m *Message) Validate() error {
	if m.Body == "" {
		return ErrEmptyBody
	}
	if utf8.RuneCountInString(m.Body) > MaxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}

// ClampLimit normalizes a client-supplied history limit into [1, MaxHistoryLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}
