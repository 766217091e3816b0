// Package troupe is a minimal actor engine: one goroutine and one buffered
// mailbox per actor, sequential message processing, explicit lifecycle
// messages. It is the event-delivery backbone of the match engine; every
// observer of simulation events is an actor or a channel fed by one.
package troupe

// Actor processes messages sequentially from its mailbox.
type Actor interface {
	Receive(ctx Context)
}

// Producer creates a fresh Actor instance for Spawn.
type Producer func() Actor

// Context carries the message being processed and the actor's handles.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() interface{}
}

type reception struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
}

func (r *reception) Engine() *Engine      { return r.engine }
func (r *reception) Self() *PID           { return r.self }
func (r *reception) Sender() *PID         { return r.sender }
func (r *reception) Message() interface{} { return r.message }

// PID is a unique reference to a running actor.
type PID struct {
	ID string
}

func (pid *PID) String() string { return pid.ID }

// Started is delivered once, before any user message.
type Started struct{}

// Stopping is delivered when the actor is asked to stop; user messages are
// dropped afterwards.
type Stopping struct{}

// Stopped is the final message an actor receives.
type Stopped struct{}

type envelope struct {
	sender  *PID
	message interface{}
}
