package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/courtside/volley/game"
)

type createdResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("server: write response: %v", err)
	}
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var mc game.MatchConfig
	if err := json.NewDecoder(r.Body).Decode(&mc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	if err := mc.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	handle, err := game.StartMatch(s.engine, s.cfg, mc, s.broadcaster)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	s.matches[handle.ID] = handle
	s.mu.Unlock()

	matchesStarted.Inc()
	writeJSON(w, http.StatusCreated, createdResponse{ID: handle.ID})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.matches))
	for id := range s.matches {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleMatchState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	handle, ok := s.matches[r.PathValue("id")]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown match"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(handle.StateJSON())
}

func (s *Server) handleStopMatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	handle, ok := s.matches[id]
	if ok {
		delete(s.matches, id)
		delete(s.seats, id)
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown match"})
		return
	}
	s.engine.Send(handle.PID, game.StopMatch{}, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var tc game.TournamentConfig
	if err := json.NewDecoder(r.Body).Decode(&tc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	if err := tc.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	handle, err := game.StartTournament(s.engine, s.cfg, tc, s.broadcaster)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	s.tournaments[handle.ID] = handle
	s.mu.Unlock()

	tournamentsStarted.Inc()
	writeJSON(w, http.StatusCreated, createdResponse{ID: handle.ID})
}

func (s *Server) handleTournamentState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	handle, ok := s.tournaments[r.PathValue("id")]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown tournament"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(handle.StateJSON())
}

// handleTournamentGo delivers the explicit "go" after an announcement.
func (s *Server) handleTournamentGo(w http.ResponseWriter, r *http.Request) {
	s.sendTournament(w, r, game.StartAnnouncedMatch{})
}

// handleTournamentProceed advances the bracket between stages.
func (s *Server) handleTournamentProceed(w http.ResponseWriter, r *http.Request) {
	s.sendTournament(w, r, game.ProceedNextStage{})
}

func (s *Server) sendTournament(w http.ResponseWriter, r *http.Request, msg interface{}) {
	s.mu.RLock()
	handle, ok := s.tournaments[r.PathValue("id")]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown tournament"})
		return
	}
	s.engine.Send(handle.PID, msg, nil)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
