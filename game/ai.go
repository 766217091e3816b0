package game

import (
	"time"

	"github.com/courtside/volley/utils"
)

// Predictor drives one AI paddle. It re-targets at a fixed cadence by
// forward-simulating the ball's trajectory, and moves the paddle toward the
// stored target every frame. The slow decision cadence against the fast
// movement cadence is exactly what bounds the AI's strength: it always reaches
// the intercept it computed, but it only looks at the board once per interval.
type Predictor struct {
	paddle *Paddle

	interval    time.Duration
	elapsed     time.Duration
	imprecision float64
	iterCap     int
	tolerance   float64
	surfaceH    float64
}

// NewPredictor attaches a predictor to an AI paddle.
func NewPredictor(cfg utils.Config, paddle *Paddle) *Predictor {
	return &Predictor{
		paddle:      paddle,
		interval:    cfg.AIDecisionInterval,
		elapsed:     cfg.AIDecisionInterval, // decide on the very first frame
		imprecision: cfg.AIImprecision,
		iterCap:     cfg.AIIterationCap,
		tolerance:   cfg.AITolerance,
		surfaceH:    cfg.SurfaceHeight,
	}
}

// Observe accumulates frame time and, once per interval, recomputes the
// paddle's target from the ball's current trajectory.
func (ai *Predictor) Observe(dt time.Duration, ball *Ball) {
	ai.elapsed += dt
	if ai.elapsed < ai.interval {
		return
	}
	ai.elapsed = 0

	if ball == nil || ai.paddle == nil {
		return
	}

	centerY := ai.surfaceH / 2
	if ai.ballIncoming(ball) {
		centerY = ai.forecast(ball) + utils.RandomOffset(ai.imprecision)
	}
	// The forecast is a desired paddle center; stored target is the top edge.
	ai.paddle.SetTarget(centerY - ai.paddle.Height/2)
}

// Step moves the paddle one frame toward the current target.
func (ai *Predictor) Step() {
	if ai.paddle != nil {
		ai.paddle.MoveTowardTarget()
	}
}

func (ai *Predictor) ballIncoming(ball *Ball) bool {
	if ai.paddle.Side == utils.SideLeft {
		return ball.Vx < 0
	}
	return ball.Vx > 0
}

// forecast runs the straight-line trajectory from the ball's position and
// velocity to the paddle's intercept plane, reflecting off the horizontal
// bounds as often as needed. Each iteration advances to the nearer of the
// plane and a wall; it stops at the plane (within tolerance) or at the
// iteration cap, returning the last computed y.
func (ai *Predictor) forecast(ball *Ball) float64 {
	x, y := ball.X, ball.Y
	vx, vy := ball.Vx, ball.Vy
	plane := ai.paddle.FrontX()

	for i := 0; i < ai.iterCap; i++ {
		if vx == 0 {
			break
		}
		tPlane := (plane - x) / vx
		if tPlane < 0 || tPlane*utils.Abs(vx) <= ai.tolerance {
			break
		}

		tWall := ai.timeToWall(y, vy, ball.Radius)
		if tWall >= 0 && tWall < tPlane {
			x += vx * tWall
			y += vy * tWall
			vy = -vy
			continue
		}

		x += vx * tPlane
		y += vy * tPlane
		break
	}
	return y
}

// timeToWall returns the frames until the ball edge reaches the top or bottom
// bound, or -1 when it never will on the current heading.
func (ai *Predictor) timeToWall(y, vy, radius float64) float64 {
	switch {
	case vy > 0:
		return (ai.surfaceH - radius - y) / vy
	case vy < 0:
		return (y - radius) / -vy
	default:
		return -1
	}
}
