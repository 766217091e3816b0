package game

import (
	"fmt"

	"github.com/courtside/volley/utils"
)

// PlayerConfig describes one participant. It arrives pre-validated from the
// host (see MatchConfig.Validate for the boundary check).
type PlayerConfig struct {
	Name    string            `json:"name"`
	Color   [3]int            `json:"color"`
	Control utils.ControlMode `json:"control"`
	// WalletID is an opaque identifier the host's ledger understands. The
	// engine only echoes it back inside Result records.
	WalletID string `json:"walletId,omitempty"`
}

// Mode selects the match layout.
type Mode string

const (
	ModeOneVsOne Mode = "1v1"
	ModeTwoVsTwo Mode = "2v2"
)

// MatchConfig configures a single match.
type MatchConfig struct {
	Mode       Mode           `json:"mode"`
	Players    []PlayerConfig `json:"players"`
	ScoreLimit int            `json:"scoreLimit"`
	PowerUps   bool           `json:"powerUps"`
}

// TournamentConfig configures a four-player single-elimination bracket.
type TournamentConfig struct {
	Players    [4]PlayerConfig `json:"players"`
	ScoreLimit int             `json:"scoreLimit"`
	PowerUps   bool            `json:"powerUps"`
}

// Result is the persistence record emitted for a completed match. The engine
// never stores it; a ledger collaborator may.
type Result struct {
	WinnerName string `json:"winnerName"`
	WinnerID   string `json:"winnerId"`
	ScoreDelta int    `json:"scoreDelta"`
	Won        bool   `json:"won"`
}

// seats returns how many paddles the mode needs.
func (m Mode) seats() int {
	if m == ModeTwoVsTwo {
		return 4
	}
	return 2
}

// Validate is the boundary check the transport layer runs before handing a
// config to the engine. The simulation itself trusts its caller.
func (c MatchConfig) Validate() error {
	if c.Mode != ModeOneVsOne && c.Mode != ModeTwoVsTwo {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if len(c.Players) != c.Mode.seats() {
		return fmt.Errorf("mode %s needs %d players, got %d", c.Mode, c.Mode.seats(), len(c.Players))
	}
	if c.ScoreLimit < utils.MinScoreLimit || c.ScoreLimit > utils.MaxScoreLimit {
		return fmt.Errorf("score limit %d out of range [%d, %d]", c.ScoreLimit, utils.MinScoreLimit, utils.MaxScoreLimit)
	}
	return validateNames(c.Players)
}

func (c TournamentConfig) Validate() error {
	if c.ScoreLimit < utils.MinScoreLimit || c.ScoreLimit > utils.MaxScoreLimit {
		return fmt.Errorf("score limit %d out of range [%d, %d]", c.ScoreLimit, utils.MinScoreLimit, utils.MaxScoreLimit)
	}
	return validateNames(c.Players[:])
}

func validateNames(players []PlayerConfig) error {
	seen := make(map[string]struct{}, len(players))
	for i, p := range players {
		folded := utils.FoldName(p.Name)
		if folded == "" {
			return fmt.Errorf("player %d has an empty name", i)
		}
		if len(p.Name) > utils.MaxNameLength {
			return fmt.Errorf("player name %q exceeds %d characters", p.Name, utils.MaxNameLength)
		}
		if _, dup := seen[folded]; dup {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[folded] = struct{}{}
	}
	return nil
}
