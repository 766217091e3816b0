package game

import (
	"github.com/courtside/volley/troupe"
	"github.com/courtside/volley/utils"
	"github.com/google/uuid"
)

// MatchHandle is what the host holds on a running match: the actor PID for
// commands and a goroutine-safe state reader.
type MatchHandle struct {
	ID    string
	PID   *troupe.PID
	actor *MatchActor
}

// StateJSON returns the latest frame snapshot, marshalled.
func (h *MatchHandle) StateJSON() []byte { return h.actor.StateJSON() }

// TournamentHandle is the host's grip on a running tournament.
type TournamentHandle struct {
	ID    string
	PID   *troupe.PID
	actor *TournamentActor
}

// StateJSON returns the live match frame, or an empty object between stages.
func (h *TournamentHandle) StateJSON() []byte { return h.actor.StateJSON() }

// StartBroadcaster spawns the event fan-out actor.
func StartBroadcaster(engine *troupe.Engine) *troupe.PID {
	return engine.Spawn("broadcaster", func() troupe.Actor { return NewBroadcasterActor() })
}

// StartMatch builds and spawns a standalone match. The config is assumed
// pre-validated by the transport boundary.
func StartMatch(engine *troupe.Engine, cfg utils.Config, mc MatchConfig, broadcaster *troupe.PID) (*MatchHandle, error) {
	match, err := NewMatch(cfg, mc)
	if err != nil {
		return nil, err
	}
	actor := NewMatchActor(cfg, match, broadcaster, nil)
	pid := engine.Spawn("match", func() troupe.Actor { return actor })
	return &MatchHandle{ID: match.ID, PID: pid, actor: actor}, nil
}

// StartTournament spawns the bracket orchestrator; it announces its first
// pairing immediately and then waits for StartAnnouncedMatch.
func StartTournament(engine *troupe.Engine, cfg utils.Config, tc TournamentConfig, broadcaster *troupe.PID) (*TournamentHandle, error) {
	if cfg.SurfaceWidth <= 0 || cfg.SurfaceHeight <= 0 {
		return nil, ErrBadSurface
	}
	actor := NewTournamentActor(cfg, tc, broadcaster)
	pid := engine.Spawn("tournament", func() troupe.Actor { return actor })
	return &TournamentHandle{ID: uuid.NewString(), PID: pid, actor: actor}, nil
}
