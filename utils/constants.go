package utils

import "time"

const (
	FrameTick = 16 * time.Millisecond

	SurfaceWidth  = 800.0
	SurfaceHeight = 600.0

	PaddleWidth  = 10.0
	PaddleHeight = 100.0
	PaddleMargin = 20.0
	PaddleSpeed  = 8.0

	BallRadius     = 10.0
	BallSpeed      = 6.0
	MaxBounceSpeed = 7.0

	PowerUpRadius = 16.0

	MaxSeats = 4

	MinScoreLimit = 1
	MaxScoreLimit = 21
	MaxNameLength = 20
)

// ControlMode selects who drives a paddle.
type ControlMode string

const (
	ControlHuman ControlMode = "human"
	ControlAI    ControlMode = "ai"
)

// Side identifies which half of the surface a paddle defends.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Opposite returns the other side, the one that scores when s concedes.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}
