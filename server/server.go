// Package server is the HTTP/websocket host around the match engine. It owns
// the transport-boundary validation the simulation core deliberately does not
// repeat.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/courtside/volley/game"
	"github.com/courtside/volley/troupe"
	"github.com/courtside/volley/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultSink persists completed match results. The ledger store implements
// it; a nil sink disables persistence.
type ResultSink interface {
	SaveResult(ctx context.Context, matchID string, result game.Result) error
}

// Server hosts matches and tournaments over HTTP and websocket.
type Server struct {
	cfg         utils.Config
	engine      *troupe.Engine
	broadcaster *troupe.PID
	sink        ResultSink

	mu          sync.RWMutex
	matches     map[string]*game.MatchHandle
	tournaments map[string]*game.TournamentHandle
	seats       map[string]map[int]bool // taken seats per room id
}

// New creates a server wired to an actor engine and its broadcaster.
func New(cfg utils.Config, engine *troupe.Engine, broadcaster *troupe.PID, sink ResultSink) *Server {
	return &Server{
		cfg:         cfg,
		engine:      engine,
		broadcaster: broadcaster,
		sink:        sink,
		matches:     make(map[string]*game.MatchHandle),
		tournaments: make(map[string]*game.TournamentHandle),
		seats:       make(map[string]map[int]bool),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /matches", s.handleCreateMatch)
	mux.HandleFunc("GET /matches", s.handleListMatches)
	mux.HandleFunc("GET /matches/{id}/state", s.handleMatchState)
	mux.HandleFunc("POST /matches/{id}/stop", s.handleStopMatch)

	mux.HandleFunc("POST /tournaments", s.handleCreateTournament)
	mux.HandleFunc("GET /tournaments/{id}/state", s.handleTournamentState)
	mux.HandleFunc("POST /tournaments/{id}/go", s.handleTournamentGo)
	mux.HandleFunc("POST /tournaments/{id}/proceed", s.handleTournamentProceed)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("/watch", s.watchHandler())
	mux.Handle("/play", s.playHandler())

	return mux
}

// ListenAndServe runs the host until the listener fails.
func (s *Server) ListenAndServe() error {
	log.Printf("server: listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// roomPID resolves a room id (match or tournament) to the live actor that
// accepts commands for it.
func (s *Server) roomPID(id string) (*troupe.PID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.matches[id]; ok {
		return h.PID, true
	}
	if h, ok := s.tournaments[id]; ok {
		return h.PID, true
	}
	return nil, false
}

// claimSeat reserves a seat in a room; false when already taken.
func (s *Server) claimSeat(room string, seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken, ok := s.seats[room]
	if !ok {
		taken = make(map[int]bool)
		s.seats[room] = taken
	}
	if taken[seat] {
		return false
	}
	taken[seat] = true
	return true
}

func (s *Server) releaseSeat(room string, seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if taken, ok := s.seats[room]; ok {
		delete(taken, seat)
	}
}
