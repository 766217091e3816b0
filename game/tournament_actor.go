package game

import (
	"log"
	"sync/atomic"

	"github.com/courtside/volley/troupe"
	"github.com/courtside/volley/utils"
)

// tournamentPhase tracks what the orchestrator is waiting for.
type tournamentPhase int

const (
	phaseAnnounced tournamentPhase = iota // waiting for the external go signal
	phasePlaying                          // a match actor is live
	phaseStageDone                        // waiting for ProceedNextStage
	phaseFinished                         // champion decided or aborted
)

// TournamentActor orchestrates a four-player bracket. It owns at most one
// live MatchActor at a time, fully quiescing it before the next one starts.
// Flow per stage: announce pairing -> StartAnnouncedMatch -> play ->
// matchFinished -> ProceedNextStage -> announce next.
type TournamentActor struct {
	cfg     utils.Config
	bracket *Bracket

	broadcaster *troupe.PID
	child       *troupe.PID
	childActor  atomic.Pointer[MatchActor] // read by HTTP state handlers
	pairing     Pairing
	phase       tournamentPhase
}

// NewTournamentActor builds the orchestrator from a validated config.
func NewTournamentActor(cfg utils.Config, tc TournamentConfig, broadcaster *troupe.PID) *TournamentActor {
	return &TournamentActor{
		cfg:         cfg,
		bracket:     NewBracket(tc),
		broadcaster: broadcaster,
	}
}

func (a *TournamentActor) Receive(ctx troupe.Context) {
	switch msg := ctx.Message().(type) {
	case troupe.Started:
		a.announce(ctx)

	case StartAnnouncedMatch:
		a.startMatch(ctx)

	case matchFinished:
		a.handleCompletion(ctx, msg)

	case ProceedNextStage:
		a.proceed(ctx)

	case PaddleInput:
		// Input is routed through the tournament while a match is live so
		// the host holds a single stable PID across stages.
		if a.child != nil {
			ctx.Engine().Send(a.child, msg, ctx.Self())
		}

	case troupe.Stopping:
		a.stopChild(ctx)

	case troupe.Stopped:

	default:
		log.Printf("tournament: unhandled message %T", msg)
	}
}

// announce raises the announcement for the current stage and pauses for the
// explicit go signal, keeping the host free to show a ready screen.
func (a *TournamentActor) announce(ctx troupe.Context) {
	pairing, err := a.bracket.NextPairing()
	if err != nil {
		a.abort(ctx, err.Error())
		return
	}
	a.pairing = pairing
	a.phase = phaseAnnounced
	a.emit(ctx, MatchAnnouncement{
		MessageType: "matchAnnouncement",
		Title:       pairing.Title,
		Home:        pairing.Home.Name,
		Away:        pairing.Away.Name,
	})
}

func (a *TournamentActor) startMatch(ctx troupe.Context) {
	if a.phase != phaseAnnounced {
		return
	}

	mc := MatchConfig{
		Mode:       ModeOneVsOne,
		Players:    []PlayerConfig{a.pairing.Home, a.pairing.Away},
		ScoreLimit: a.bracket.ScoreLimit,
		PowerUps:   a.bracket.PowerUps,
	}
	match, err := NewMatch(a.cfg, mc)
	if err != nil {
		a.abort(ctx, err.Error())
		return
	}

	actor := NewMatchActor(a.cfg, match, a.broadcaster, ctx.Self())
	a.childActor.Store(actor)
	a.child = ctx.Engine().Spawn("match", func() troupe.Actor { return actor })
	a.phase = phasePlaying
}

// handleCompletion records the stage winner. The final immediately raises
// tournament-complete; earlier stages wait for the host's proceed call.
func (a *TournamentActor) handleCompletion(ctx troupe.Context, msg matchFinished) {
	if a.phase != phasePlaying || msg.From == nil || a.child == nil || msg.From.ID != a.child.ID {
		return
	}
	a.stopChild(ctx)

	if len(msg.Ended.Winners) == 0 {
		a.abort(ctx, "match ended without a winner")
		return
	}
	winner := msg.Ended.Winners[0]

	wasFinal := a.bracket.Stage() == StageFinal
	if err := a.bracket.RecordWinner(winner); err != nil {
		a.abort(ctx, err.Error())
		return
	}

	if wasFinal {
		a.phase = phaseFinished
		a.emit(ctx, TournamentEnded{MessageType: "tournamentEnded", Champion: winner})
		return
	}
	a.phase = phaseStageDone
}

// proceed advances the bracket. A premature call raises an abort event and
// leaves the stage untouched; the host treats it as a return-to-setup signal.
func (a *TournamentActor) proceed(ctx troupe.Context) {
	if a.phase == phasePlaying || a.phase == phaseFinished {
		a.abort(ctx, "cannot advance while the stage is unresolved")
		return
	}
	if err := a.bracket.Advance(); err != nil {
		a.abort(ctx, err.Error())
		return
	}
	a.announce(ctx)
}

// abort raises the signal without touching the bracket; the host decides
// whether to tear the tournament down or return to setup.
func (a *TournamentActor) abort(ctx troupe.Context, reason string) {
	a.emit(ctx, TournamentAborted{MessageType: "tournamentAborted", Reason: reason})
}

func (a *TournamentActor) stopChild(ctx troupe.Context) {
	if a.child != nil {
		ctx.Engine().Stop(a.child)
		a.child = nil
		a.childActor.Store(nil)
	}
}

func (a *TournamentActor) emit(ctx troupe.Context, ev Event) {
	if a.broadcaster != nil {
		ctx.Engine().Send(a.broadcaster, BroadcastEvents{Events: []Event{ev}}, ctx.Self())
	}
}

// Bracket exposes the bracket for tests, which drive the actor synchronously.
func (a *TournamentActor) Bracket() *Bracket { return a.bracket }

// StateJSON exposes the live match frame, or an empty object between matches.
// Safe from any goroutine.
func (a *TournamentActor) StateJSON() []byte {
	if child := a.childActor.Load(); child != nil {
		return child.StateJSON()
	}
	return []byte(`{}`)
}
