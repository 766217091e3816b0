package game

import (
	"math"

	"github.com/courtside/volley/utils"
)

// Ball is the single long-lived ball of a match. Power-ups mutate its radius
// and speed during a rally; ResetToBaseState restores the spawn contract after
// every point so no mutation leaks into the next rally.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Vx     float64 `json:"vx"`
	Vy     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Color  [3]int  `json:"color"`

	baseRadius float64
	baseSpeed  float64
	surfaceW   float64
	surfaceH   float64
}

// NewBall creates a ball centered on the surface, serving toward the given
// side.
func NewBall(cfg utils.Config, serveToward utils.Side) *Ball {
	b := &Ball{
		Color:      [3]int{255, 255, 255},
		baseRadius: cfg.BallRadius,
		baseSpeed:  cfg.BallSpeed,
		surfaceW:   cfg.SurfaceWidth,
		surfaceH:   cfg.SurfaceHeight,
	}
	b.ResetToBaseState(serveToward)
	return b
}

// ResetToBaseState recenters the ball and restores its spawn radius and speed.
// This is the full "what gets reset at a point" contract: position, velocity,
// radius. Color survives.
func (b *Ball) ResetToBaseState(serveToward utils.Side) {
	b.X = b.surfaceW / 2
	b.Y = b.surfaceH / 2
	b.Radius = b.baseRadius

	b.Vx = b.baseSpeed
	if serveToward == utils.SideLeft {
		b.Vx = -b.baseSpeed
	}
	// A mild random serve angle so rallies do not repeat verbatim.
	b.Vy = utils.RandomOffset(b.baseSpeed / 2)
}

// Move advances the ball one frame and reflects the vertical velocity at the
// top and bottom bounds.
func (b *Ball) Move() {
	b.X += b.Vx
	b.Y += b.Vy

	if b.Y-b.Radius <= 0 {
		b.Y = b.Radius
		b.Vy = utils.Abs(b.Vy)
	}
	if b.Y+b.Radius >= b.surfaceH {
		b.Y = b.surfaceH - b.Radius
		b.Vy = -utils.Abs(b.Vy)
	}
}

// Speed returns the current velocity magnitude.
func (b *Ball) Speed() float64 {
	return utils.Magnitude(b.Vx, b.Vy)
}

// ScaleSpeed multiplies the velocity by factor. Speed magnitude only ever
// changes through this operation.
func (b *Ball) ScaleSpeed(factor float64) {
	b.Vx *= factor
	b.Vy *= factor
}

// ScaleRadius multiplies the radius by factor, keeping the ball on-surface.
func (b *Ball) ScaleRadius(factor float64) {
	b.Radius *= factor
	b.Y = utils.Clamp(b.Y, b.Radius, b.surfaceH-b.Radius)
}

// Intercepts reports whether the ball overlaps the axis-aligned rectangle of
// the paddle.
func (b *Ball) Intercepts(p *Paddle) bool {
	if p == nil {
		return false
	}
	closestX := math.Min(math.Max(b.X, p.X), p.X+p.Width)
	closestY := math.Min(math.Max(b.Y, p.Y), p.Y+p.Height)
	return utils.Distance(b.X, b.Y, closestX, closestY) < b.Radius
}

// OutLeft reports whether the center has crossed x=0 by more than the radius.
func (b *Ball) OutLeft() bool {
	return b.X < -b.Radius
}

// OutRight reports whether the center has crossed the right bound by more than
// the radius.
func (b *Ball) OutRight() bool {
	return b.X > b.surfaceW+b.Radius
}
