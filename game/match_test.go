package game

import (
	"testing"
	"time"

	"github.com/courtside/volley/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneVsOneConfig(scoreLimit int) MatchConfig {
	return MatchConfig{
		Mode: ModeOneVsOne,
		Players: []PlayerConfig{
			{Name: "ada", Control: utils.ControlHuman},
			{Name: "bob", Control: utils.ControlHuman},
		},
		ScoreLimit: scoreLimit,
	}
}

func twoVsTwoConfig(scoreLimit int) MatchConfig {
	return MatchConfig{
		Mode: ModeTwoVsTwo,
		Players: []PlayerConfig{
			{Name: "ada", Control: utils.ControlHuman},
			{Name: "bob", Control: utils.ControlHuman},
			{Name: "cam", Control: utils.ControlHuman},
			{Name: "dot", Control: utils.ControlHuman},
		},
		ScoreLimit: scoreLimit,
	}
}

func startedMatch(t *testing.T, mc MatchConfig) *Match {
	t.Helper()
	m, err := NewMatch(utils.DefaultConfig(), mc)
	require.NoError(t, err)
	m.Start()
	return m
}

// forceGoal parks the ball past the given goal line and steps once, so the
// scoring path runs without depending on rally physics.
func forceGoal(t *testing.T, m *Match, line utils.Side) []Event {
	t.Helper()
	ball := m.Ball()
	if line == utils.SideLeft {
		ball.X = -ball.Radius - 100
	} else {
		ball.X = m.cfg.SurfaceWidth + ball.Radius + 100
	}
	ball.Y = m.cfg.SurfaceHeight / 2
	ball.Vy = 0
	return m.Step(m.cfg.FrameTick)
}

func eventsOfType[T Event](events []Event) []T {
	var out []T
	for _, ev := range events {
		if typed, ok := ev.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func TestNewMatch_BadSurface(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.SurfaceWidth = 0
	_, err := NewMatch(cfg, oneVsOneConfig(3))
	assert.ErrorIs(t, err, ErrBadSurface)
}

func TestMatch_StepBeforeStartDoesNothing(t *testing.T) {
	m, err := NewMatch(utils.DefaultConfig(), oneVsOneConfig(3))
	require.NoError(t, err)
	assert.Empty(t, m.Step(16*time.Millisecond))
}

func TestMatch_StartResetsState(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))
	forceGoal(t, m, utils.SideLeft) // right scores

	events := m.Start()
	require.Len(t, events, 1)
	started, ok := events[0].(MatchStarted)
	require.True(t, ok)
	assert.Equal(t, m.ID, started.MatchID)

	left, right := m.Scores()
	assert.Zero(t, left)
	assert.Zero(t, right)
	assert.Equal(t, m.cfg.SurfaceWidth/2, m.Ball().X)
	assert.Equal(t, m.cfg.SurfaceHeight/2, m.Ball().Y)
}

func TestMatch_GoalScoresOppositeSide(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))

	events := forceGoal(t, m, utils.SideLeft)
	goals := eventsOfType[GoalScored](events)
	require.Len(t, goals, 1)
	assert.Equal(t, utils.SideRight, goals[0].Scorer)

	left, right := m.Scores()
	assert.Equal(t, 0, left)
	assert.Equal(t, 1, right)
}

func TestMatch_GoalResetsRally(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))
	m.Paddle(0).StepDown()
	m.Paddle(0).StepDown()

	forceGoal(t, m, utils.SideRight) // left scores

	ball := m.Ball()
	assert.Equal(t, m.cfg.SurfaceWidth/2, ball.X, "ball recentered")
	assert.Equal(t, m.cfg.SurfaceHeight/2, ball.Y)
	assert.Negative(t, ball.Vx, "loser receives the serve")
	assert.Equal(t, (m.cfg.SurfaceHeight-m.cfg.PaddleHeight)/2, m.Paddle(0).Y,
		"paddles back at start positions")
}

func TestMatch_EndsExactlyOnceAtScoreLimit(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(3))

	var endings []MatchEnded
	for i := 0; i < 3; i++ {
		events := forceGoal(t, m, utils.SideLeft)
		endings = append(endings, eventsOfType[MatchEnded](events)...)
	}

	require.Len(t, endings, 1, "win condition fires exactly once")
	ended := endings[0]
	assert.Equal(t, utils.SideRight, ended.WinningSide)
	require.Len(t, ended.Winners, 1)
	assert.Equal(t, "bob", ended.Winners[0].Name)
	assert.Equal(t, 0, ended.LeftScore)
	assert.Equal(t, 3, ended.RightScore)
	assert.Equal(t, 3, ended.Result.ScoreDelta)
	assert.True(t, ended.Result.Won)
	assert.True(t, m.Ended())
	assert.Equal(t, utils.SideRight, m.Winner())

	// A finished match refuses further frames.
	assert.Empty(t, m.Step(m.cfg.FrameTick))
}

func TestMatch_ScoresAreMonotonic(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(21))

	prevLeft, prevRight := 0, 0
	for i := 0; i < 10; i++ {
		side := utils.SideLeft
		if i%2 == 0 {
			side = utils.SideRight
		}
		forceGoal(t, m, side)
		left, right := m.Scores()
		assert.GreaterOrEqual(t, left, prevLeft)
		assert.GreaterOrEqual(t, right, prevRight)
		assert.Equal(t, prevLeft+prevRight+1, left+right, "each goal adds exactly one point")
		prevLeft, prevRight = left, right
	}
}

func TestMatch_HeldInputMovesEachFrame(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))
	startY := m.Paddle(0).Y

	m.SetInput(0, DirDown, true)
	m.Step(m.cfg.FrameTick)
	m.Step(m.cfg.FrameTick)
	assert.Equal(t, startY+2*m.cfg.PaddleSpeed, m.Paddle(0).Y)

	m.SetInput(0, DirDown, false)
	held := m.Paddle(0).Y
	m.Step(m.cfg.FrameTick)
	assert.Equal(t, held, m.Paddle(0).Y, "released key stops movement")
}

func TestMatch_InputIgnoredForAISeat(t *testing.T) {
	mc := oneVsOneConfig(5)
	mc.Players[1].Control = utils.ControlAI
	m := startedMatch(t, mc)

	m.SetInput(1, DirDown, true)
	assert.False(t, m.held[1][DirDown], "AI seats reject human input")

	m.SetInput(99, DirDown, true) // out of range, must not panic
}

func TestMatch_PaddleBounceReflectsAndDeflects(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))
	paddle := m.Paddle(0) // left
	ball := m.Ball()

	// Aim the ball at the upper quarter of the left paddle's face.
	ball.X = paddle.X + paddle.Width + ball.Radius + 2
	ball.Y = paddle.CenterY() - paddle.Height/4
	ball.Vx = -4
	ball.Vy = 0
	speedBefore := ball.Speed()

	m.Step(m.cfg.FrameTick)

	assert.Positive(t, ball.Vx, "ball reflects off the left paddle")
	assert.Negative(t, ball.Vy, "upper-half contact deflects upward")
	assert.Greater(t, ball.Speed(), speedBefore, "each hit speeds the rally up")
	assert.GreaterOrEqual(t, ball.X, paddle.X+paddle.Width,
		"ball repositioned outside the paddle face")
}

func TestMatch_PowerUpMutatesBallOnce(t *testing.T) {
	mc := oneVsOneConfig(5)
	mc.PowerUps = true
	m := startedMatch(t, mc)
	require.Len(t, m.PowerUps(), 2)

	pu := m.PowerUps()[0]
	// Park the other pickup out of reach so only one collision is in play.
	m.PowerUps()[1].X = -1000
	m.PowerUps()[1].Y = -1000

	ball := m.Ball()
	radiusBefore := ball.Radius

	// Park the ball on the pickup with a dead-stop heading so the frame's
	// move keeps the overlap.
	ball.X, ball.Y = pu.X, pu.Y
	ball.Vx, ball.Vy = 0, 0
	speedBefore := ball.Speed()

	events := m.Step(m.cfg.FrameTick)
	consumed := eventsOfType[PowerUpConsumed](events)
	require.Len(t, consumed, 1)
	assert.Equal(t, pu.Kind, consumed[0].Kind)
	assert.False(t, pu.Active)

	if pu.Kind == PowerUpGrow {
		assert.Equal(t, radiusBefore*m.cfg.PowerUpGrowFactor, ball.Radius)
	} else {
		assert.Equal(t, radiusBefore*m.cfg.PowerUpShrinkFactor, ball.Radius)
	}
	assert.InDelta(t, speedBefore*m.cfg.PowerUpSpeedFactor, ball.Speed(), 1e-9)

	// Second frame on the same spot consumes nothing.
	ball.X, ball.Y = pu.X, pu.Y
	ball.Vx, ball.Vy = 0, 0
	again := m.Step(m.cfg.FrameTick)
	assert.Empty(t, eventsOfType[PowerUpConsumed](again))
}

func TestMatch_GoalRespawnsPowerUps(t *testing.T) {
	mc := oneVsOneConfig(5)
	mc.PowerUps = true
	m := startedMatch(t, mc)

	m.PowerUps()[0].Active = false
	m.PowerUps()[1].Active = false

	forceGoal(t, m, utils.SideLeft)

	require.Len(t, m.PowerUps(), 2)
	assert.True(t, m.PowerUps()[0].Active, "rally reset respawns pickups")
	assert.True(t, m.PowerUps()[1].Active)
}

func TestMatch_TwoVsTwoSharesSideScore(t *testing.T) {
	m := startedMatch(t, twoVsTwoConfig(5))

	// Seats 0,1 left; 2,3 right with the inner columns between them.
	assert.Equal(t, utils.SideLeft, m.Paddle(0).Side)
	assert.Equal(t, utils.SideLeft, m.Paddle(1).Side)
	assert.Equal(t, utils.SideRight, m.Paddle(2).Side)
	assert.Equal(t, utils.SideRight, m.Paddle(3).Side)
	assert.Greater(t, m.Paddle(1).X, m.Paddle(0).X)
	assert.Less(t, m.Paddle(2).X, m.Paddle(3).X)

	forceGoal(t, m, utils.SideRight) // left team scores

	left, right := m.Scores()
	assert.Equal(t, 1, left)
	assert.Equal(t, 0, right)
	assert.Equal(t, 1, m.Paddle(0).Score)
	assert.Equal(t, 1, m.Paddle(1).Score, "teammates share the side score")
}

func TestMatch_TwoVsTwoWinnersIncludeWholeTeam(t *testing.T) {
	m := startedMatch(t, twoVsTwoConfig(2))

	var endings []MatchEnded
	for i := 0; i < 2; i++ {
		events := forceGoal(t, m, utils.SideRight)
		endings = append(endings, eventsOfType[MatchEnded](events)...)
	}

	require.Len(t, endings, 1)
	require.Len(t, endings[0].Winners, 2)
	assert.Equal(t, "ada", endings[0].Winners[0].Name)
	assert.Equal(t, "bob", endings[0].Winners[1].Name)
}

func TestMatch_SnapshotIsValueCopy(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))

	snap := m.Snapshot()
	require.Len(t, snap.Paddles, 2)

	snap.Paddles[0].Y = -9999
	snap.Ball.X = -9999

	assert.NotEqual(t, snap.Paddles[0].Y, m.Paddle(0).Y)
	assert.NotEqual(t, snap.Ball.X, m.Ball().X)
}

func TestMatch_EveryStepEmitsFrameState(t *testing.T) {
	m := startedMatch(t, oneVsOneConfig(5))

	for i := 1; i <= 5; i++ {
		events := m.Step(m.cfg.FrameTick)
		frames := eventsOfType[FrameState](events)
		require.Len(t, frames, 1)
		assert.Equal(t, uint64(i), frames[0].Frame)
		assert.Equal(t, m.ID, frames[0].MatchID)
	}
}
