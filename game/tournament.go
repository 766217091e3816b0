package game

import (
	"errors"
	"fmt"
)

// Stage is a bracket position in the four-player single-elimination
// tournament.
type Stage int

const (
	StageSemifinalA Stage = iota
	StageSemifinalB
	StageFinal
	StageComplete
)

func (s Stage) Title() string {
	switch s {
	case StageSemifinalA:
		return "Semifinal A"
	case StageSemifinalB:
		return "Semifinal B"
	case StageFinal:
		return "Final"
	default:
		return "Complete"
	}
}

// ErrBracketIncomplete signals an attempt to reach the final before both
// semifinal winners exist. It is delivered to the host as an abort event, not
// a panic; the host recovers by returning to setup.
var ErrBracketIncomplete = errors.New("final requires both semifinal winners")

// ErrTournamentOver signals advancing past the completed state.
var ErrTournamentOver = errors.New("tournament already complete")

// Pairing is the two contestants of one bracket stage.
type Pairing struct {
	Title string
	Home  PlayerConfig
	Away  PlayerConfig
}

// Bracket is the tournament state machine: two semifinals, one final, winners
// carried forward. The champion is set if and only if the stage has reached
// StageComplete.
type Bracket struct {
	Players    [4]PlayerConfig
	ScoreLimit int
	PowerUps   bool

	stage       Stage
	semiWinners [2]*PlayerConfig
	champion    *PlayerConfig
}

// NewBracket starts a bracket at semifinal A.
func NewBracket(tc TournamentConfig) *Bracket {
	return &Bracket{
		Players:    tc.Players,
		ScoreLimit: tc.ScoreLimit,
		PowerUps:   tc.PowerUps,
	}
}

// Stage returns the current bracket stage.
func (b *Bracket) Stage() Stage { return b.stage }

// Champion returns the tournament winner once the final has concluded.
func (b *Bracket) Champion() (PlayerConfig, bool) {
	if b.champion == nil {
		return PlayerConfig{}, false
	}
	return *b.champion, true
}

// NextPairing selects the contestants for the current stage: players 1&2,
// then 3&4, then the two semifinal winners. A missing semifinal winner at the
// final is the bracket-integrity failure of the abort taxonomy.
func (b *Bracket) NextPairing() (Pairing, error) {
	switch b.stage {
	case StageSemifinalA:
		return Pairing{Title: b.stage.Title(), Home: b.Players[0], Away: b.Players[1]}, nil
	case StageSemifinalB:
		return Pairing{Title: b.stage.Title(), Home: b.Players[2], Away: b.Players[3]}, nil
	case StageFinal:
		if b.semiWinners[0] == nil || b.semiWinners[1] == nil {
			return Pairing{}, ErrBracketIncomplete
		}
		return Pairing{Title: b.stage.Title(), Home: *b.semiWinners[0], Away: *b.semiWinners[1]}, nil
	default:
		return Pairing{}, ErrTournamentOver
	}
}

// RecordWinner stores the winner of the current stage's match. Winning the
// final sets the champion and moves the bracket to StageComplete immediately;
// there is nothing left to advance to.
func (b *Bracket) RecordWinner(winner PlayerConfig) error {
	switch b.stage {
	case StageSemifinalA:
		w := winner
		b.semiWinners[0] = &w
	case StageSemifinalB:
		w := winner
		b.semiWinners[1] = &w
	case StageFinal:
		w := winner
		b.champion = &w
		b.stage = StageComplete
	default:
		return ErrTournamentOver
	}
	return nil
}

// Advance moves to the next stage. Reaching the final without both semifinal
// winners fails without mutating the stage, so a premature proceed never
// pushes the bracket past the final.
func (b *Bracket) Advance() error {
	switch b.stage {
	case StageSemifinalA:
		if b.semiWinners[0] == nil {
			return fmt.Errorf("cannot advance: %w", ErrBracketIncomplete)
		}
		b.stage = StageSemifinalB
	case StageSemifinalB:
		if b.semiWinners[0] == nil || b.semiWinners[1] == nil {
			return fmt.Errorf("cannot advance: %w", ErrBracketIncomplete)
		}
		b.stage = StageFinal
	case StageFinal:
		return fmt.Errorf("cannot advance: %w", ErrBracketIncomplete)
	default:
		return ErrTournamentOver
	}
	return nil
}
