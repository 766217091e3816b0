package game

import (
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/courtside/volley/troupe"
	"github.com/courtside/volley/utils"
)

// MatchActor owns one Match and its frame cadence. It is the only writer of
// the match state; everything leaving the actor is a value copy, which is how
// the single-threaded cooperative model of the simulation survives inside a
// concurrent host.
type MatchActor struct {
	cfg   utils.Config
	match *Match

	broadcaster *troupe.PID
	parent      *troupe.PID
	self        *troupe.PID

	ticker     *time.Ticker
	stopTicker chan struct{}
	frozen     bool

	stateJSON atomic.Value // latest FrameState, marshalled for HTTP reads
}

// NewMatchActor wraps a prebuilt Match. The broadcaster receives every event;
// the parent, when set, additionally gets a matchFinished notification.
func NewMatchActor(cfg utils.Config, match *Match, broadcaster, parent *troupe.PID) *MatchActor {
	a := &MatchActor{
		cfg:         cfg,
		match:       match,
		broadcaster: broadcaster,
		parent:      parent,
		stopTicker:  make(chan struct{}),
	}
	a.storeState(match.Snapshot())
	return a
}

func (a *MatchActor) Receive(ctx troupe.Context) {
	switch msg := ctx.Message().(type) {
	case troupe.Started:
		a.self = ctx.Self()
		a.emit(ctx, a.match.Start())
		a.ticker = time.NewTicker(a.cfg.FrameTick)
		go a.runTicker(ctx.Engine())

	case frameTick:
		if a.frozen {
			return
		}
		events := a.match.Step(a.cfg.FrameTick)
		a.emit(ctx, events)
		if a.match.Ended() {
			a.freeze()
			a.notifyParent(ctx, events)
		}

	case PaddleInput:
		a.match.SetInput(msg.Seat, msg.Dir, msg.Pressed)

	case StopMatch:
		a.freeze()
		ctx.Engine().Stop(ctx.Self())

	case troupe.Stopping:
		a.freeze()

	case troupe.Stopped:
		// nothing to release beyond the ticker

	default:
		log.Printf("match actor: unhandled message %T", msg)
	}
}

// runTicker forwards ticks into the mailbox so frames stay serialized with
// input and stop messages.
func (a *MatchActor) runTicker(engine *troupe.Engine) {
	for {
		select {
		case <-a.stopTicker:
			return
		case <-a.ticker.C:
			engine.Send(a.self, frameTick{}, a.self)
		}
	}
}

// freeze halts the frame loop. Idempotent: stopping a stopped match does
// nothing.
func (a *MatchActor) freeze() {
	if a.frozen {
		return
	}
	a.frozen = true
	if a.ticker != nil {
		a.ticker.Stop()
	}
	close(a.stopTicker)
}

func (a *MatchActor) emit(ctx troupe.Context, events []Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		if fs, ok := ev.(FrameState); ok {
			a.storeState(fs)
		}
	}
	if a.broadcaster != nil {
		ctx.Engine().Send(a.broadcaster, BroadcastEvents{Events: events}, ctx.Self())
	}
}

func (a *MatchActor) notifyParent(ctx troupe.Context, events []Event) {
	if a.parent == nil {
		return
	}
	for _, ev := range events {
		if ended, ok := ev.(MatchEnded); ok {
			ctx.Engine().Send(a.parent, matchFinished{From: ctx.Self(), Ended: ended}, ctx.Self())
			return
		}
	}
}

func (a *MatchActor) storeState(fs FrameState) {
	data, err := json.Marshal(fs)
	if err != nil {
		log.Printf("match actor: marshal frame: %v", err)
		return
	}
	a.stateJSON.Store(data)
}

// StateJSON returns the latest marshalled frame for HTTP reads. Safe from any
// goroutine.
func (a *MatchActor) StateJSON() []byte {
	if data, ok := a.stateJSON.Load().([]byte); ok {
		return data
	}
	return []byte(`{}`)
}
