/*
Package match persists finished game results and serves per-user match history.
*/
package match

import (
	"errors"
	"time"
)

// HistoryLimit caps the number of records returned for one history query.
const HistoryLimit = 50

// ErrInvalidMatch is returned for results that fail validation: identical
// players, a winner who did not play, or negative scores.
var ErrInvalidMatch = errors.New("invalid match result")

// Match is one finished two-player game.
type Match struct {
	ID       int64     `json:"id"`
	PlayerA  int64     `json:"playerA"`
	PlayerB  int64     `json:"playerB"`
	ScoreA   int       `json:"scoreA"`
	ScoreB   int       `json:"scoreB"`
	WinnerID int64     `json:"winnerId"`
	PlayedAt time.Time `json:"playedAt"`
}

// Validate checks the structural invariants of a match result before it is
// written. The database enforces the same rules with CHECK constraints.
func (m *Match) Validate() error {
	if m.PlayerA == m.PlayerB {
		return ErrInvalidMatch
	}
	if m.WinnerID != m.PlayerA && m.WinnerID != m.PlayerB {
		return ErrInvalidMatch
	}
	if m.ScoreA < 0 || m.ScoreB < 0 {
		return ErrInvalidMatch
	}
	return nil
}
