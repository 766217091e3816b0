package troupe

import (
	"log"
	"runtime/debug"
	"sync/atomic"
)

const mailboxSize = 1024

type process struct {
	engine  *Engine
	pid     *PID
	produce Producer
	actor   Actor
	mailbox chan *envelope
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, produce Producer) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		produce: produce,
		mailbox: make(chan *envelope, mailboxSize),
	}
}

// deliver queues a message without blocking. A full mailbox drops the message;
// the frame loop tolerates lost ticks and everything else is low-volume.
func (p *process) deliver(message interface{}, sender *PID) {
	if p.stopped.Load() {
		if _, ok := message.(Stopping); !ok {
			return
		}
	}
	select {
	case p.mailbox <- &envelope{sender: sender, message: message}:
	default:
		log.Printf("troupe: %s mailbox full, dropping %T", p.pid.ID, message)
	}
}

func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			p.invoke(Stopped{}, nil)
		}
		p.engine.remove(p.pid)
	}()

	p.actor = p.produce()
	if p.actor == nil {
		log.Printf("troupe: %s producer returned nil actor", p.pid.ID)
		return
	}

	for env := range p.mailbox {
		if _, quitting := env.message.(Stopping); quitting {
			if p.stopped.CompareAndSwap(false, true) {
				p.invoke(env.message, env.sender)
			}
			return
		}
		if p.stopped.Load() {
			continue
		}
		p.invoke(env.message, env.sender)
	}
}

// invoke calls Receive with panic isolation so one bad message cannot take
// down the engine.
func (p *process) invoke(message interface{}, sender *PID) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("troupe: %s panicked on %T: %v\n%s", p.pid.ID, message, r, debug.Stack())
		}
	}()
	p.actor.Receive(&reception{
		engine:  p.engine,
		self:    p.pid,
		sender:  sender,
		message: message,
	})
}
