package game

import (
	"github.com/courtside/volley/utils"
)

// PowerUpKind selects which one-shot mutation a pickup applies to the ball.
type PowerUpKind string

const (
	PowerUpGrow   PowerUpKind = "grow"
	PowerUpShrink PowerUpKind = "shrink"
)

// PowerUp is a static circular pickup. It is consumed on first contact with
// the ball and stays inert until the next rally respawns it.
type PowerUp struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Radius float64     `json:"radius"`
	Kind   PowerUpKind `json:"kind"`
	Active bool        `json:"active"`
}

// NewPowerUp spawns an active pickup at a random in-bounds location, kept away
// from the goal lines so it is reachable mid-rally.
func NewPowerUp(cfg utils.Config, kind PowerUpKind) *PowerUp {
	margin := cfg.SurfaceWidth / 5
	return &PowerUp{
		X:      utils.RandomWithin(margin, cfg.SurfaceWidth-margin),
		Y:      utils.RandomWithin(cfg.PowerUpRadius, cfg.SurfaceHeight-cfg.PowerUpRadius),
		Radius: cfg.PowerUpRadius,
		Kind:   kind,
		Active: true,
	}
}

// CheckCollision returns true exactly once per activation, when the ball's
// circle first overlaps the pickup's circle, and deactivates the pickup as a
// side effect.
func (p *PowerUp) CheckCollision(ball *Ball) bool {
	if p == nil || !p.Active || ball == nil {
		return false
	}
	if utils.Distance(ball.X, ball.Y, p.X, p.Y) >= ball.Radius+p.Radius {
		return false
	}
	p.Active = false
	return true
}
