package ws

import (
	"log"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/session"
)

// Bridge implements session.Callback and broadcasts events to the WebSocket
// hub. Snapshots go out as report:update, optimizer results as
// optimize:result.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnSnapshot(snap session.Snapshot) {
	msg, err := NewEnvelope(TypeReportUpdate, snap)
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnOptimum(opt session.Optimum) {
	msg, err := NewEnvelope(TypeOptimizeResult, opt)
	if err != nil {
		log.Printf("Error marshaling optimum: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
