package game

import (
	"github.com/courtside/volley/troupe"
	"github.com/courtside/volley/utils"
	"golang.org/x/net/websocket"
)

// Event is anything the simulation emits toward its observers. Concrete event
// structs carry a messageType tag so websocket clients can switch on it.
type Event interface{}

// --- Simulation events (broadcast to host and clients) ---

// MatchStarted opens a match's event stream.
type MatchStarted struct {
	MessageType string      `json:"messageType"` // "matchStarted"
	MatchID     string      `json:"matchId"`
	Config      MatchConfig `json:"config"`
}

// FrameState is the per-frame draw snapshot: everything a renderer needs.
type FrameState struct {
	MessageType string        `json:"messageType"` // "frameState"
	MatchID     string        `json:"matchId"`
	Frame       uint64        `json:"frame"`
	Paddles     []PaddleState `json:"paddles"`
	Ball        BallState     `json:"ball"`
	PowerUps    []PowerUp     `json:"powerUps,omitempty"`
	LeftScore   int           `json:"leftScore"`
	RightScore  int           `json:"rightScore"`
}

// PaddleState is the drawable slice of a Paddle.
type PaddleState struct {
	Seat   int        `json:"seat"`
	Side   utils.Side `json:"side"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Name   string     `json:"name"`
	Color  [3]int     `json:"color"`
	Score  int        `json:"score"`
}

// BallState is the drawable slice of the Ball.
type BallState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Vx     float64 `json:"vx"`
	Vy     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Color  [3]int  `json:"color"`
}

// GoalScored is emitted once per point, before the rally reset.
type GoalScored struct {
	MessageType string     `json:"messageType"` // "goalScored"
	MatchID     string     `json:"matchId"`
	Scorer      utils.Side `json:"scorer"`
	LeftScore   int        `json:"leftScore"`
	RightScore  int        `json:"rightScore"`
}

// PowerUpConsumed is emitted when the ball eats an active pickup.
type PowerUpConsumed struct {
	MessageType string      `json:"messageType"` // "powerUpConsumed"
	MatchID     string      `json:"matchId"`
	Kind        PowerUpKind `json:"kind"`
}

// MatchEnded fires exactly once, when a side first reaches the score limit.
// Winners holds one player for 1v1 and the whole team for 2v2.
type MatchEnded struct {
	MessageType string         `json:"messageType"` // "matchEnded"
	MatchID     string         `json:"matchId"`
	WinningSide utils.Side     `json:"winningSide"`
	Winners     []PlayerConfig `json:"winners"`
	LeftScore   int            `json:"leftScore"`
	RightScore  int            `json:"rightScore"`
	Result      Result         `json:"result"`
}

// MatchAnnouncement is the tournament "Get Ready" screen: the bracket pauses
// here until an explicit go signal.
type MatchAnnouncement struct {
	MessageType string `json:"messageType"` // "matchAnnouncement"
	Title       string `json:"title"`
	Home        string `json:"home"`
	Away        string `json:"away"`
}

// TournamentEnded carries the champion.
type TournamentEnded struct {
	MessageType string       `json:"messageType"` // "tournamentEnded"
	Champion    PlayerConfig `json:"champion"`
}

// TournamentAborted is the recoverable bracket-integrity signal: the host
// returns to setup instead of crashing.
type TournamentAborted struct {
	MessageType string `json:"messageType"` // "tournamentAborted"
	Reason      string `json:"reason"`
}

// --- Actor commands ---

// PaddleInput mutates the held-direction state of one seat. Only current
// state matters; there is no queueing.
type PaddleInput struct {
	Seat    int
	Dir     InputDir
	Pressed bool
}

// StopMatch halts the frame loop. Idempotent.
type StopMatch struct{}

// frameTick drives one simulation step. Internal to MatchActor.
type frameTick struct{}

// StartAnnouncedMatch is the explicit "go" acknowledgement after a
// MatchAnnouncement.
type StartAnnouncedMatch struct{}

// ProceedNextStage advances the bracket to its next stage after a completed
// match.
type ProceedNextStage struct{}

// --- BroadcasterActor commands ---

// AddClient starts streaming events to a websocket connection.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient stops streaming to a connection.
type RemoveClient struct {
	Conn *websocket.Conn
}

// Subscribe registers a channel observer. Events are delivered in emission
// order; a full channel drops the event rather than stalling the loop.
type Subscribe struct {
	Ch chan Event
}

// Unsubscribe removes a channel observer.
type Unsubscribe struct {
	Ch chan Event
}

// BroadcastEvents fans a batch out to every observer, in order.
type BroadcastEvents struct {
	Events []Event
}

// matchFinished notifies a parent (tournament) actor that its child match is
// done.
type matchFinished struct {
	From  *troupe.PID
	Ended MatchEnded
}
