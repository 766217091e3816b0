package game

import (
	"encoding/json"
	"log"

	"github.com/courtside/volley/troupe"
	"golang.org/x/net/websocket"
)

// BroadcasterActor fans simulation events out to websocket clients and
// channel subscribers. Channel subscribers see events in emission order;
// being an actor, the fan-out is serialized, so two subscribers never observe
// the same pair of events in a different order.
type BroadcasterActor struct {
	clients map[*websocket.Conn]bool
	subs    []chan Event
}

func NewBroadcasterActor() *BroadcasterActor {
	return &BroadcasterActor{clients: make(map[*websocket.Conn]bool)}
}

func (a *BroadcasterActor) Receive(ctx troupe.Context) {
	switch msg := ctx.Message().(type) {
	case troupe.Started:

	case AddClient:
		if msg.Conn != nil {
			a.clients[msg.Conn] = true
		}

	case RemoveClient:
		delete(a.clients, msg.Conn)

	case Subscribe:
		if msg.Ch != nil {
			a.subs = append(a.subs, msg.Ch)
		}

	case Unsubscribe:
		for i, ch := range a.subs {
			if ch == msg.Ch {
				a.subs = append(a.subs[:i], a.subs[i+1:]...)
				break
			}
		}

	case BroadcastEvents:
		a.broadcast(msg.Events)

	case troupe.Stopping:
		for conn := range a.clients {
			_ = conn.Close()
		}
		a.clients = make(map[*websocket.Conn]bool)
		a.subs = nil

	case troupe.Stopped:

	default:
		log.Printf("broadcaster: unhandled message %T", msg)
	}
}

func (a *BroadcasterActor) broadcast(events []Event) {
	var payload []byte
	if len(a.clients) > 0 {
		data, err := json.Marshal(events)
		if err != nil {
			log.Printf("broadcaster: marshal events: %v", err)
		} else {
			payload = data
		}
	}

	for conn := range a.clients {
		if payload == nil {
			break
		}
		if _, err := conn.Write(payload); err != nil {
			_ = conn.Close()
			delete(a.clients, conn)
		}
	}

	for _, ch := range a.subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
				// A slow subscriber loses events rather than stalling the
				// simulation fan-out.
			}
		}
	}
}
