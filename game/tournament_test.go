package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bracketConfig() TournamentConfig {
	return TournamentConfig{
		Players: [4]PlayerConfig{
			{Name: "p1"}, {Name: "p2"}, {Name: "p3"}, {Name: "p4"},
		},
		ScoreLimit: 3,
	}
}

func TestBracket_FullRun(t *testing.T) {
	b := NewBracket(bracketConfig())

	// Semifinal A: players 1 and 2.
	pairing, err := b.NextPairing()
	require.NoError(t, err)
	assert.Equal(t, "Semifinal A", pairing.Title)
	assert.Equal(t, "p1", pairing.Home.Name)
	assert.Equal(t, "p2", pairing.Away.Name)

	require.NoError(t, b.RecordWinner(pairing.Home)) // p1 wins
	require.NoError(t, b.Advance())

	// Semifinal B: players 3 and 4.
	pairing, err = b.NextPairing()
	require.NoError(t, err)
	assert.Equal(t, "Semifinal B", pairing.Title)
	assert.Equal(t, "p3", pairing.Home.Name)
	assert.Equal(t, "p4", pairing.Away.Name)

	require.NoError(t, b.RecordWinner(pairing.Home)) // p3 wins
	require.NoError(t, b.Advance())

	// Final: the two semifinal winners.
	pairing, err = b.NextPairing()
	require.NoError(t, err)
	assert.Equal(t, "Final", pairing.Title)
	assert.Equal(t, "p1", pairing.Home.Name)
	assert.Equal(t, "p3", pairing.Away.Name)

	require.NoError(t, b.RecordWinner(pairing.Away)) // p3 takes it

	assert.Equal(t, StageComplete, b.Stage())
	champion, ok := b.Champion()
	require.True(t, ok)
	assert.Equal(t, "p3", champion.Name)

	// Nothing left to play or advance to.
	_, err = b.NextPairing()
	assert.ErrorIs(t, err, ErrTournamentOver)
	assert.ErrorIs(t, b.Advance(), ErrTournamentOver)
	assert.ErrorIs(t, b.RecordWinner(champion), ErrTournamentOver)
}

func TestBracket_PrematureAdvanceDoesNotMoveStage(t *testing.T) {
	b := NewBracket(bracketConfig())

	err := b.Advance()
	assert.ErrorIs(t, err, ErrBracketIncomplete)
	assert.Equal(t, StageSemifinalA, b.Stage(), "failed advance must not move the bracket")

	require.NoError(t, b.RecordWinner(b.Players[0]))
	require.NoError(t, b.Advance())

	// Semifinal B has no winner yet: the final stays out of reach.
	err = b.Advance()
	assert.ErrorIs(t, err, ErrBracketIncomplete)
	assert.Equal(t, StageSemifinalB, b.Stage())
}

func TestBracket_NoChampionBeforeFinal(t *testing.T) {
	b := NewBracket(bracketConfig())
	_, ok := b.Champion()
	assert.False(t, ok)

	require.NoError(t, b.RecordWinner(b.Players[0]))
	_, ok = b.Champion()
	assert.False(t, ok, "a semifinal win is not a championship")
}
