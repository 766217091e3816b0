package game

import (
	"github.com/courtside/volley/utils"
)

// Paddle is a rectangular actor stepping in whole speed increments. Position
// is the top-left corner. Its vertical extent is clamped to the surface on
// every mutation.
type Paddle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
	Score  int     `json:"score"`

	Seat    int               `json:"seat"`
	Side    utils.Side        `json:"side"`
	Name    string            `json:"name"`
	Color   [3]int            `json:"color"`
	Control utils.ControlMode `json:"control"`

	// TargetY is where the AI wants the paddle's top edge; meaningless for
	// human paddles.
	TargetY float64 `json:"-"`

	startX   float64
	startY   float64
	surfaceH float64
}

// NewPaddle creates a paddle at its canonical start position.
func NewPaddle(cfg utils.Config, seat int, side utils.Side, x float64, player PlayerConfig) *Paddle {
	p := &Paddle{
		Width:    cfg.PaddleWidth,
		Height:   cfg.PaddleHeight,
		Speed:    cfg.PaddleSpeed,
		Seat:     seat,
		Side:     side,
		Name:     player.Name,
		Color:    player.Color,
		Control:  player.Control,
		startX:   x,
		startY:   (cfg.SurfaceHeight - cfg.PaddleHeight) / 2,
		surfaceH: cfg.SurfaceHeight,
	}
	p.ResetPosition()
	return p
}

// ResetPosition moves the paddle back to its canonical start. Score is not
// touched; that belongs to match (re)start.
func (p *Paddle) ResetPosition() {
	p.X = p.startX
	p.Y = p.startY
	p.TargetY = p.startY
}

// StepUp moves one speed increment toward the top bound.
func (p *Paddle) StepUp() {
	p.Y = utils.Clamp(p.Y-p.Speed, 0, p.surfaceH-p.Height)
}

// StepDown moves one speed increment toward the bottom bound.
func (p *Paddle) StepDown() {
	p.Y = utils.Clamp(p.Y+p.Speed, 0, p.surfaceH-p.Height)
}

// SetTarget stores the desired top-edge position, clamped so the paddle stays
// fully on-surface.
func (p *Paddle) SetTarget(y float64) {
	p.TargetY = utils.Clamp(y, 0, p.surfaceH-p.Height)
}

// MoveTowardTarget advances at most one speed step toward TargetY, snapping
// when the remaining distance is inside one step to avoid oscillation.
func (p *Paddle) MoveTowardTarget() {
	remaining := p.TargetY - p.Y
	switch {
	case utils.Abs(remaining) <= p.Speed:
		p.Y = p.TargetY
	case remaining > 0:
		p.StepDown()
	default:
		p.StepUp()
	}
}

// CenterY returns the vertical center of the paddle.
func (p *Paddle) CenterY() float64 {
	return p.Y + p.Height/2
}

// FrontX returns the x-coordinate of the ball-facing edge, the AI's intercept
// plane.
func (p *Paddle) FrontX() float64 {
	if p.Side == utils.SideLeft {
		return p.X + p.Width
	}
	return p.X
}
