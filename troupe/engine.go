package troupe

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Engine owns every actor process and routes messages between them.
type Engine struct {
	counter  uint64
	mu       sync.RWMutex
	actors   map[string]*process
	stopping atomic.Bool
}

func NewEngine() *Engine {
	return &Engine{actors: make(map[string]*process)}
}

// Spawn starts a new actor and returns its PID. The name is a human-readable
// prefix; uniqueness comes from the engine counter.
func (e *Engine) Spawn(name string, produce Producer) *PID {
	if produce == nil {
		panic("troupe: producer cannot be nil")
	}
	if e.stopping.Load() {
		return nil
	}

	id := atomic.AddUint64(&e.counter, 1)
	pid := &PID{ID: fmt.Sprintf("%s-%d", name, id)}
	proc := newProcess(e, pid, produce)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	e.Send(pid, Started{}, nil)
	return pid
}

// Send delivers a message to the actor behind pid. Unknown PIDs are dropped;
// a stopped actor is indistinguishable from a missing one by design of the
// silently-skipped error model.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if ok {
		proc.deliver(message, sender)
	}
}

// Stop asks an actor to shut down. It processes Stopping, then Stopped, then
// its goroutine exits. Stopping an unknown PID is a no-op.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	_, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if ok {
		e.Send(pid, Stopping{}, nil)
	}
}

// Alive reports whether the actor behind pid is still registered.
func (e *Engine) Alive(pid *PID) bool {
	if pid == nil {
		return false
	}
	e.mu.RLock()
	_, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	return ok
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and waits up to timeout for them to drain.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.mu.RLock()
		proc, ok := e.actors[pid.ID]
		e.mu.RUnlock()
		if ok {
			proc.deliver(Stopping{}, nil)
		}
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	if len(e.actors) > 0 {
		log.Printf("troupe: shutdown timeout, %d actors abandoned", len(e.actors))
		e.actors = make(map[string]*process)
	}
	e.mu.Unlock()
}
