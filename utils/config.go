package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configurable engine and host parameters.
type Config struct {
	// Timing
	FrameTick          time.Duration `koanf:"frame_tick"`           // Time between simulation steps
	AIDecisionInterval time.Duration `koanf:"ai_decision_interval"` // How often an AI paddle re-targets

	// Surface
	SurfaceWidth  float64 `koanf:"surface_width"`
	SurfaceHeight float64 `koanf:"surface_height"`

	// Paddle
	PaddleWidth  float64 `koanf:"paddle_width"`
	PaddleHeight float64 `koanf:"paddle_height"`
	PaddleMargin float64 `koanf:"paddle_margin"` // Gap between a paddle face and its wall
	PaddleSpeed  float64 `koanf:"paddle_speed"`  // One movement step per frame

	// Ball
	BallRadius     float64 `koanf:"ball_radius"`
	BallSpeed      float64 `koanf:"ball_speed"`       // Horizontal serve speed
	MaxBounceSpeed float64 `koanf:"max_bounce_speed"` // Vertical speed at the paddle's edge
	HitSpeedFactor float64 `koanf:"hit_speed_factor"` // Speed multiplier applied on each paddle hit

	// Predictive AI
	AIImprecision  float64 `koanf:"ai_imprecision"` // Max random offset added to a computed intercept
	AIIterationCap int     `koanf:"ai_iteration_cap"`
	AITolerance    float64 `koanf:"ai_tolerance"`

	// Power-ups
	PowerUpRadius       float64 `koanf:"powerup_radius"`
	PowerUpGrowFactor   float64 `koanf:"powerup_grow_factor"`
	PowerUpShrinkFactor float64 `koanf:"powerup_shrink_factor"`
	PowerUpSpeedFactor  float64 `koanf:"powerup_speed_factor"`

	// Host
	Addr     string `koanf:"addr"`      // HTTP/websocket listen address
	StoreDSN string `koanf:"store_dsn"` // Postgres DSN for the result ledger; empty disables it
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		FrameTick:          FrameTick,
		AIDecisionInterval: time.Second,

		SurfaceWidth:  SurfaceWidth,
		SurfaceHeight: SurfaceHeight,

		PaddleWidth:  PaddleWidth,
		PaddleHeight: PaddleHeight,
		PaddleMargin: PaddleMargin,
		PaddleSpeed:  PaddleSpeed,

		BallRadius:     BallRadius,
		BallSpeed:      BallSpeed,
		MaxBounceSpeed: MaxBounceSpeed,
		HitSpeedFactor: 1.05,

		AIImprecision:  20.0,
		AIIterationCap: 32,
		AITolerance:    0.5,

		PowerUpRadius:       PowerUpRadius,
		PowerUpGrowFactor:   2.0,
		PowerUpShrinkFactor: 0.5,
		PowerUpSpeedFactor:  1.25,

		Addr: ":3001",
	}
}

// LoadConfig layers defaults, an optional YAML file, and VOLLEY_-prefixed
// environment variables, in increasing order of precedence. The file path is
// taken from VOLLEY_CONFIG when set.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("VOLLEY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, err
		}
	}

	// VOLLEY_PADDLE_SPEED -> paddle_speed, matching the koanf tags above.
	envProvider := env.Provider("VOLLEY_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "volley_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, err
	}

	if cfg.SurfaceWidth <= 0 || cfg.SurfaceHeight <= 0 {
		return cfg, errors.New("surface dimensions must be positive")
	}
	if cfg.FrameTick <= 0 {
		return cfg, errors.New("frame_tick must be positive")
	}
	return cfg, nil
}
