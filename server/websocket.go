package server

import (
	"encoding/json"
	"io"
	"log"
	"strconv"

	"github.com/courtside/volley/game"
	"golang.org/x/net/websocket"
)

// keyMessage is what /play clients send on key-down and key-up.
type keyMessage struct {
	Key     string `json:"key"`
	Pressed bool   `json:"pressed"`
}

// watchHandler streams engine events to read-only spectators.
func (s *Server) watchHandler() websocket.Handler {
	return func(ws *websocket.Conn) {
		s.engine.Send(s.broadcaster, game.AddClient{Conn: ws}, nil)
		defer s.engine.Send(s.broadcaster, game.RemoveClient{Conn: ws}, nil)

		// Drain (and discard) anything the spectator sends, so the
		// connection's close is observed.
		buffer := make([]byte, 256)
		for {
			if _, err := ws.Read(buffer); err != nil {
				if err != io.EOF {
					log.Printf("server: watch read: %v", err)
				}
				return
			}
		}
	}
}

// playHandler claims a seat in a room and forwards key state to its actor.
// Query params: room (match or tournament id), seat (0-based).
func (s *Server) playHandler() websocket.Handler {
	return func(ws *websocket.Conn) {
		query := ws.Request().URL.Query()
		room := query.Get("room")
		seat, err := strconv.Atoi(query.Get("seat"))
		if err != nil || seat < 0 {
			_ = websocket.JSON.Send(ws, errorResponse{Error: "invalid seat"})
			return
		}

		pid, ok := s.roomPID(room)
		if !ok {
			_ = websocket.JSON.Send(ws, errorResponse{Error: "unknown room"})
			return
		}
		if !s.claimSeat(room, seat) {
			_ = websocket.JSON.Send(ws, errorResponse{Error: "seat taken"})
			return
		}
		defer s.releaseSeat(room, seat)

		s.readLoop(ws, func(buffer []byte) {
			var km keyMessage
			if err := json.Unmarshal(buffer, &km); err != nil {
				log.Printf("server: bad key message from seat %d: %v", seat, err)
				return
			}
			dir, ok := directionFromKey(km.Key)
			if !ok {
				return
			}
			s.engine.Send(pid, game.PaddleInput{Seat: seat, Dir: dir, Pressed: km.Pressed}, nil)
		})

		// Release held keys when the player drops.
		s.engine.Send(pid, game.PaddleInput{Seat: seat, Dir: game.DirUp, Pressed: false}, nil)
		s.engine.Send(pid, game.PaddleInput{Seat: seat, Dir: game.DirDown, Pressed: false}, nil)
	}
}

// readLoop pumps websocket frames into the callback until the client leaves.
func (s *Server) readLoop(ws *websocket.Conn, callback func(buffer []byte)) {
	buffer := make([]byte, 1024)
	for {
		size, err := ws.Read(buffer)
		if err != nil {
			if err != io.EOF {
				log.Printf("server: play read: %v", err)
			}
			return
		}
		callback(buffer[:size])
	}
}

// directionFromKey maps the host's key identifiers onto paddle directions.
func directionFromKey(key string) (game.InputDir, bool) {
	switch key {
	case "ArrowUp", "w", "W":
		return game.DirUp, true
	case "ArrowDown", "s", "S":
		return game.DirDown, true
	default:
		return game.DirUp, false
	}
}
