package game

import (
	"errors"
	"time"

	"github.com/courtside/volley/utils"
	"github.com/google/uuid"
)

// InputDir is a held movement direction for one seat.
type InputDir int

const (
	DirUp InputDir = iota
	DirDown
)

// ErrBadSurface is returned when a match is constructed without a usable
// drawing surface.
var ErrBadSurface = errors.New("surface dimensions must be positive")

// Match is the synchronous simulation core. One Step call is one frame; the
// caller (MatchActor, or a test) owns the cadence. Nothing in here spawns a
// goroutine or reads a clock, which is what makes the frame pipeline
// deterministic under test.
type Match struct {
	ID     string
	Config MatchConfig

	cfg      utils.Config
	paddles  []*Paddle
	ball     *Ball
	powerUps []*PowerUp
	ais      []*Predictor

	// held[seat][dir], read once per frame. Only held-vs-not matters.
	held [utils.MaxSeats][2]bool

	frame   uint64
	started bool
	ended   bool
	winner  utils.Side
}

// NewMatch builds paddles and ball at canonical start positions. The config
// is assumed pre-validated; the only construction failure is a missing or
// degenerate surface.
func NewMatch(cfg utils.Config, mc MatchConfig) (*Match, error) {
	if cfg.SurfaceWidth <= 0 || cfg.SurfaceHeight <= 0 {
		return nil, ErrBadSurface
	}

	m := &Match{
		ID:     uuid.NewString(),
		Config: mc,
		cfg:    cfg,
	}

	for seat, player := range mc.Players {
		side, x := m.seatPlacement(seat)
		paddle := NewPaddle(cfg, seat, side, x, player)
		m.paddles = append(m.paddles, paddle)
		if player.Control == utils.ControlAI {
			m.ais = append(m.ais, NewPredictor(cfg, paddle))
		}
	}

	m.ball = NewBall(cfg, utils.SideLeft)
	m.spawnPowerUps()
	return m, nil
}

// seatPlacement maps a seat index to its side and column. 1v1 uses the outer
// columns only; 2v2 adds an inner column per side so teammates never overlap.
func (m *Match) seatPlacement(seat int) (utils.Side, float64) {
	outerLeft := m.cfg.PaddleMargin
	outerRight := m.cfg.SurfaceWidth - m.cfg.PaddleMargin - m.cfg.PaddleWidth
	if m.Config.Mode != ModeTwoVsTwo {
		if seat == 0 {
			return utils.SideLeft, outerLeft
		}
		return utils.SideRight, outerRight
	}

	inner := m.cfg.SurfaceWidth / 8
	switch seat {
	case 0:
		return utils.SideLeft, outerLeft
	case 1:
		return utils.SideLeft, inner
	case 2:
		return utils.SideRight, m.cfg.SurfaceWidth - inner - m.cfg.PaddleWidth
	default:
		return utils.SideRight, outerRight
	}
}

// Start resets all mutable state and begins accepting frames. Calling it on a
// running match restarts it.
func (m *Match) Start() []Event {
	for _, p := range m.paddles {
		p.Score = 0
		p.ResetPosition()
	}
	m.ball.ResetToBaseState(utils.SideLeft)
	m.spawnPowerUps()
	m.held = [utils.MaxSeats][2]bool{}
	m.frame = 0
	m.started = true
	m.ended = false

	return []Event{MatchStarted{
		MessageType: "matchStarted",
		MatchID:     m.ID,
		Config:      m.Config,
	}}
}

// Ended reports whether the win condition has fired.
func (m *Match) Ended() bool { return m.ended }

// SetInput records held-direction state for a seat. Input for AI seats or
// out-of-range seats is ignored.
func (m *Match) SetInput(seat int, dir InputDir, pressed bool) {
	if seat < 0 || seat >= len(m.paddles) {
		return
	}
	if m.paddles[seat] != nil && m.paddles[seat].Control != utils.ControlHuman {
		return
	}
	m.held[seat][dir] = pressed
}

// Step advances one frame and returns the events it produced. A finished or
// unstarted match steps to nothing.
func (m *Match) Step(dt time.Duration) []Event {
	if !m.started || m.ended {
		return nil
	}
	m.frame++

	var events []Event

	// (a) human input, one clamped step per held direction
	for seat, p := range m.paddles {
		if p == nil || p.Control != utils.ControlHuman {
			continue
		}
		if m.held[seat][DirUp] {
			p.StepUp()
		}
		if m.held[seat][DirDown] {
			p.StepDown()
		}
	}

	// (b) AI decision + movement
	for _, ai := range m.ais {
		ai.Observe(dt, m.ball)
		ai.Step()
	}

	// (c..f) ball physics; skipped defensively when the ball is absent
	// mid-transition
	if m.ball != nil {
		m.ball.Move()
		m.collidePaddles()
		if m.Config.PowerUps {
			events = append(events, m.collidePowerUps()...)
		}
		events = append(events, m.resolveGoals()...)
	}

	events = append(events, m.Snapshot())
	return events
}

// collidePaddles tests the ball against every paddle in seat order and applies
// at most one bounce per frame; the first overlap wins, which is what keeps a
// ball from double-reflecting off two overlapping faces.
func (m *Match) collidePaddles() {
	ball := m.ball
	for _, p := range m.paddles {
		if p == nil || !ball.Intercepts(p) {
			continue
		}
		// Ignore contact on the back face: the ball must be heading into
		// this paddle's wall.
		if p.Side == utils.SideLeft && ball.Vx > 0 {
			continue
		}
		if p.Side == utils.SideRight && ball.Vx < 0 {
			continue
		}

		// Reposition to just outside the face, then reflect.
		if p.Side == utils.SideLeft {
			ball.X = p.X + p.Width + ball.Radius
			ball.Vx = utils.Abs(ball.Vx)
		} else {
			ball.X = p.X - ball.Radius
			ball.Vx = -utils.Abs(ball.Vx)
		}

		// Deflection: vertical velocity proportional to the contact offset
		// from the paddle center.
		offset := (ball.Y - p.CenterY()) / (p.Height / 2)
		offset = utils.Clamp(offset, -1, 1)
		ball.Vy = offset * m.cfg.MaxBounceSpeed

		if m.cfg.HitSpeedFactor > 1 {
			ball.ScaleSpeed(m.cfg.HitSpeedFactor)
		}
		return
	}
}

// collidePowerUps applies the one-shot mutation of the first pickup the ball
// touches this frame.
func (m *Match) collidePowerUps() []Event {
	var events []Event
	for _, pu := range m.powerUps {
		if pu == nil || !pu.CheckCollision(m.ball) {
			continue
		}
		switch pu.Kind {
		case PowerUpShrink:
			m.ball.ScaleRadius(m.cfg.PowerUpShrinkFactor)
		default:
			m.ball.ScaleRadius(m.cfg.PowerUpGrowFactor)
		}
		m.ball.ScaleSpeed(m.cfg.PowerUpSpeedFactor)
		events = append(events, PowerUpConsumed{
			MessageType: "powerUpConsumed",
			MatchID:     m.ID,
			Kind:        pu.Kind,
		})
	}
	return events
}

// resolveGoals checks the goal lines, scores, resets the rally and evaluates
// the win condition.
func (m *Match) resolveGoals() []Event {
	ball := m.ball

	var scorer utils.Side
	switch {
	case ball.OutLeft():
		scorer = utils.SideRight
	case ball.OutRight():
		scorer = utils.SideLeft
	default:
		return nil
	}

	for _, p := range m.paddles {
		if p != nil && p.Side == scorer {
			p.Score++
		}
		if p != nil {
			p.ResetPosition()
		}
	}

	// The loser receives the serve.
	ball.ResetToBaseState(scorer.Opposite())
	m.spawnPowerUps()

	left, right := m.Scores()
	events := []Event{GoalScored{
		MessageType: "goalScored",
		MatchID:     m.ID,
		Scorer:      scorer,
		LeftScore:   left,
		RightScore:  right,
	}}

	if m.sideScore(scorer) >= m.Config.ScoreLimit {
		m.ended = true
		m.winner = scorer
		events = append(events, m.endedEvent(scorer, left, right))
	}
	return events
}

func (m *Match) endedEvent(side utils.Side, left, right int) MatchEnded {
	winners := m.SidePlayers(side)
	delta := left - right
	if side == utils.SideRight {
		delta = right - left
	}

	result := Result{ScoreDelta: delta, Won: true}
	if len(winners) > 0 {
		result.WinnerName = winners[0].Name
		result.WinnerID = winners[0].WalletID
	}

	return MatchEnded{
		MessageType: "matchEnded",
		MatchID:     m.ID,
		WinningSide: side,
		Winners:     winners,
		LeftScore:   left,
		RightScore:  right,
		Result:      result,
	}
}

// SidePlayers returns the configs of every player defending the given side.
func (m *Match) SidePlayers(side utils.Side) []PlayerConfig {
	var players []PlayerConfig
	for i, p := range m.paddles {
		if p != nil && p.Side == side && i < len(m.Config.Players) {
			players = append(players, m.Config.Players[i])
		}
	}
	return players
}

func (m *Match) sideScore(side utils.Side) int {
	// Team score is the shared side score; every paddle of a side carries the
	// same counter, so the first one is authoritative.
	for _, p := range m.paddles {
		if p != nil && p.Side == side {
			return p.Score
		}
	}
	return 0
}

// Scores returns the left and right side scores.
func (m *Match) Scores() (left, right int) {
	return m.sideScore(utils.SideLeft), m.sideScore(utils.SideRight)
}

// Winner returns the winning side; meaningful only after Ended.
func (m *Match) Winner() utils.Side { return m.winner }

// Ball exposes the live ball for tests and the AI.
func (m *Match) Ball() *Ball { return m.ball }

// Paddle returns the paddle at a seat, or nil.
func (m *Match) Paddle(seat int) *Paddle {
	if seat < 0 || seat >= len(m.paddles) {
		return nil
	}
	return m.paddles[seat]
}

// PowerUps exposes the live pickups.
func (m *Match) PowerUps() []*PowerUp { return m.powerUps }

func (m *Match) spawnPowerUps() {
	if !m.Config.PowerUps {
		m.powerUps = nil
		return
	}
	m.powerUps = []*PowerUp{
		NewPowerUp(m.cfg, PowerUpGrow),
		NewPowerUp(m.cfg, PowerUpShrink),
	}
}

// Snapshot builds the per-frame draw state as a value copy safe to cross
// goroutine boundaries.
func (m *Match) Snapshot() FrameState {
	left, right := m.Scores()
	fs := FrameState{
		MessageType: "frameState",
		MatchID:     m.ID,
		Frame:       m.frame,
		LeftScore:   left,
		RightScore:  right,
	}
	for _, p := range m.paddles {
		if p == nil {
			continue
		}
		fs.Paddles = append(fs.Paddles, PaddleState{
			Seat:   p.Seat,
			Side:   p.Side,
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
			Name:   p.Name,
			Color:  p.Color,
			Score:  p.Score,
		})
	}
	if m.ball != nil {
		fs.Ball = BallState{
			X:      m.ball.X,
			Y:      m.ball.Y,
			Vx:     m.ball.Vx,
			Vy:     m.ball.Vy,
			Radius: m.ball.Radius,
			Color:  m.ball.Color,
		}
	}
	for _, pu := range m.powerUps {
		if pu != nil {
			fs.PowerUps = append(fs.PowerUps, *pu)
		}
	}
	return fs
}
