package game

import (
	"testing"
	"time"

	"github.com/courtside/volley/troupe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_DeliversInEmissionOrder(t *testing.T) {
	engine := troupe.NewEngine()
	defer engine.Shutdown(time.Second)

	pid := StartBroadcaster(engine)
	ch := make(chan Event, 16)
	engine.Send(pid, Subscribe{Ch: ch}, nil)

	batch := []Event{
		GoalScored{MessageType: "goalScored", LeftScore: 1},
		GoalScored{MessageType: "goalScored", LeftScore: 2},
		GoalScored{MessageType: "goalScored", LeftScore: 3},
	}
	engine.Send(pid, BroadcastEvents{Events: batch}, nil)

	for want := 1; want <= 3; want++ {
		goal := waitForEvent[GoalScored](t, ch)
		assert.Equal(t, want, goal.LeftScore, "events arrive in emission order")
	}
}

func TestBroadcaster_FansOutToEverySubscriber(t *testing.T) {
	engine := troupe.NewEngine()
	defer engine.Shutdown(time.Second)

	pid := StartBroadcaster(engine)
	first := make(chan Event, 16)
	second := make(chan Event, 16)
	engine.Send(pid, Subscribe{Ch: first}, nil)
	engine.Send(pid, Subscribe{Ch: second}, nil)

	engine.Send(pid, BroadcastEvents{Events: []Event{TournamentEnded{Champion: PlayerConfig{Name: "p1"}}}}, nil)

	assert.Equal(t, "p1", waitForEvent[TournamentEnded](t, first).Champion.Name)
	assert.Equal(t, "p1", waitForEvent[TournamentEnded](t, second).Champion.Name)
}

func TestBroadcaster_UnsubscribeStopsDelivery(t *testing.T) {
	engine := troupe.NewEngine()
	defer engine.Shutdown(time.Second)

	pid := StartBroadcaster(engine)
	ch := make(chan Event, 16)
	engine.Send(pid, Subscribe{Ch: ch}, nil)
	engine.Send(pid, BroadcastEvents{Events: []Event{GoalScored{LeftScore: 1}}}, nil)
	require.Equal(t, 1, waitForEvent[GoalScored](t, ch).LeftScore)

	engine.Send(pid, Unsubscribe{Ch: ch}, nil)
	engine.Send(pid, BroadcastEvents{Events: []Event{GoalScored{LeftScore: 2}}}, nil)

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, ch, "unsubscribed channel receives nothing")
}

func TestBroadcaster_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	engine := troupe.NewEngine()
	defer engine.Shutdown(time.Second)

	pid := StartBroadcaster(engine)
	full := make(chan Event) // unbuffered and never read
	healthy := make(chan Event, 16)
	engine.Send(pid, Subscribe{Ch: full}, nil)
	engine.Send(pid, Subscribe{Ch: healthy}, nil)

	engine.Send(pid, BroadcastEvents{Events: []Event{GoalScored{LeftScore: 1}}}, nil)

	assert.Equal(t, 1, waitForEvent[GoalScored](t, healthy).LeftScore,
		"a stalled subscriber must not starve the rest")
}
