package server

import (
	"context"
	"log"

	"github.com/courtside/volley/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_matches_started_total",
		Help: "Matches created through the API.",
	})
	tournamentsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_tournaments_started_total",
		Help: "Tournaments created through the API.",
	})
	framesSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_frames_simulated_total",
		Help: "Simulation frames observed on the event stream.",
	})
	goalsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_goals_scored_total",
		Help: "Goals observed on the event stream.",
	})
	powerUpsConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_powerups_consumed_total",
		Help: "Power-up pickups consumed by the ball.",
	})
	matchesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_matches_completed_total",
		Help: "Matches that reached their score limit.",
	})
	tournamentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volley_tournaments_completed_total",
		Help: "Tournaments with a decided champion.",
	})
)

// RunEventPump consumes the engine's event stream, feeding metrics and the
// result sink, until the context is cancelled. Run it in its own goroutine;
// the channel must already be subscribed to the broadcaster.
func (s *Server) RunEventPump(ctx context.Context, events <-chan game.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.observe(ctx, ev)
		}
	}
}

func (s *Server) observe(ctx context.Context, ev game.Event) {
	switch e := ev.(type) {
	case game.FrameState:
		framesSimulated.Inc()
	case game.GoalScored:
		goalsScored.Inc()
	case game.PowerUpConsumed:
		powerUpsConsumed.Inc()
	case game.MatchEnded:
		matchesCompleted.Inc()
		if s.sink != nil {
			if err := s.sink.SaveResult(ctx, e.MatchID, e.Result); err != nil {
				log.Printf("server: persist result for %s: %v", e.MatchID, err)
			}
		}
	case game.TournamentEnded:
		tournamentsCompleted.Inc()
	}
}
