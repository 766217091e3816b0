package game

import (
	"testing"

	"github.com/courtside/volley/utils"
)

func testPlayer(name string) PlayerConfig {
	return PlayerConfig{Name: name, Color: [3]int{200, 100, 50}, Control: utils.ControlHuman}
}

func TestNewPaddle(t *testing.T) {
	cfg := utils.DefaultConfig()
	paddle := NewPaddle(cfg, 0, utils.SideLeft, cfg.PaddleMargin, testPlayer("ada"))

	if paddle.X != cfg.PaddleMargin {
		t.Errorf("Expected X to be %f, but got %f", cfg.PaddleMargin, paddle.X)
	}
	wantY := (cfg.SurfaceHeight - cfg.PaddleHeight) / 2
	if paddle.Y != wantY {
		t.Errorf("Expected Y to be %f, but got %f", wantY, paddle.Y)
	}
	if paddle.Side != utils.SideLeft {
		t.Errorf("Expected side %v, got %v", utils.SideLeft, paddle.Side)
	}
	if paddle.Name != "ada" {
		t.Errorf("Expected name %q, got %q", "ada", paddle.Name)
	}
}

func TestPaddle_StepsClampToSurface(t *testing.T) {
	cfg := utils.DefaultConfig()
	paddle := NewPaddle(cfg, 0, utils.SideLeft, cfg.PaddleMargin, testPlayer("ada"))

	// Walk past the top bound.
	for i := 0; i < 1000; i++ {
		paddle.StepUp()
	}
	if paddle.Y != 0 {
		t.Errorf("Expected Y clamped at 0, got %f", paddle.Y)
	}

	// Walk past the bottom bound.
	for i := 0; i < 1000; i++ {
		paddle.StepDown()
	}
	wantY := cfg.SurfaceHeight - cfg.PaddleHeight
	if paddle.Y != wantY {
		t.Errorf("Expected Y clamped at %f, got %f", wantY, paddle.Y)
	}
}

func TestPaddle_SetTargetClamps(t *testing.T) {
	cfg := utils.DefaultConfig()
	testCases := []struct {
		name   string
		target float64
		want   float64
	}{
		{"above surface", -500, 0},
		{"below surface", cfg.SurfaceHeight * 2, cfg.SurfaceHeight - cfg.PaddleHeight},
		{"in bounds", 123, 123},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paddle := NewPaddle(cfg, 0, utils.SideLeft, cfg.PaddleMargin, testPlayer("ada"))
			paddle.SetTarget(tc.target)
			if paddle.TargetY != tc.want {
				t.Errorf("Expected TargetY %f, got %f", tc.want, paddle.TargetY)
			}
		})
	}
}

func TestPaddle_MoveTowardTarget(t *testing.T) {
	cfg := utils.DefaultConfig()
	paddle := NewPaddle(cfg, 0, utils.SideLeft, cfg.PaddleMargin, testPlayer("ada"))
	startY := paddle.Y

	// Far target: exactly one speed step per call.
	paddle.SetTarget(startY + 10*cfg.PaddleSpeed)
	paddle.MoveTowardTarget()
	if paddle.Y != startY+cfg.PaddleSpeed {
		t.Errorf("Expected one step down to %f, got %f", startY+cfg.PaddleSpeed, paddle.Y)
	}

	// Near target: snap instead of oscillating around it.
	paddle.SetTarget(paddle.Y + cfg.PaddleSpeed/2)
	paddle.MoveTowardTarget()
	if paddle.Y != paddle.TargetY {
		t.Errorf("Expected snap to target %f, got %f", paddle.TargetY, paddle.Y)
	}

	// At target: stays put.
	before := paddle.Y
	paddle.MoveTowardTarget()
	if paddle.Y != before {
		t.Errorf("Expected paddle to hold at %f, got %f", before, paddle.Y)
	}
}

func TestPaddle_ResetPositionKeepsScore(t *testing.T) {
	cfg := utils.DefaultConfig()
	paddle := NewPaddle(cfg, 0, utils.SideLeft, cfg.PaddleMargin, testPlayer("ada"))
	paddle.StepDown()
	paddle.StepDown()
	paddle.Score = 7

	paddle.ResetPosition()

	if paddle.Y != (cfg.SurfaceHeight-cfg.PaddleHeight)/2 {
		t.Errorf("Expected Y back at start, got %f", paddle.Y)
	}
	if paddle.Score != 7 {
		t.Errorf("Expected score untouched by position reset, got %d", paddle.Score)
	}
}

func TestPaddle_FrontX(t *testing.T) {
	cfg := utils.DefaultConfig()
	left := NewPaddle(cfg, 0, utils.SideLeft, cfg.PaddleMargin, testPlayer("ada"))
	right := NewPaddle(cfg, 1, utils.SideRight, cfg.SurfaceWidth-cfg.PaddleMargin-cfg.PaddleWidth, testPlayer("bob"))

	if left.FrontX() != left.X+left.Width {
		t.Errorf("Expected left front at %f, got %f", left.X+left.Width, left.FrontX())
	}
	if right.FrontX() != right.X {
		t.Errorf("Expected right front at %f, got %f", right.X, right.FrontX())
	}
}
