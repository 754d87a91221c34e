package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := &Match{PlayerA: 1, PlayerB: 2, ScoreA: 11, ScoreB: 7, WinnerID: 1}
	assert.NoError(t, valid.Validate())
}

func TestValidateIdenticalPlayers(t *testing.T) {
	t.Parallel()

	m := &Match{PlayerA: 1, PlayerB: 1, ScoreA: 11, ScoreB: 7, WinnerID: 1}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMatch)
}

func TestValidateWinnerDidNotPlay(t *testing.T) {
	t.Parallel()

	m := &Match{PlayerA: 1, PlayerB: 2, ScoreA: 11, ScoreB: 7, WinnerID: 3}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMatch)
}

func TestValidateNegativeScores(t *testing.T) {
	t.Parallel()

	m := &Match{PlayerA: 1, PlayerB: 2, ScoreA: -1, ScoreB: 7, WinnerID: 2}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMatch)

	m = &Match{PlayerA: 1, PlayerB: 2, ScoreA: 11, ScoreB: -7, WinnerID: 1}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMatch)
}
