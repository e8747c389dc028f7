package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Gabriel-Lim/ite-west-capacity-charges/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes client messages to the
// session engine.
type Handler struct {
	hub    *Hub
	engine *session.Engine
}

func NewHandler(hub *Hub, engine *session.Engine) *Handler {
	return &Handler{hub: hub, engine: engine}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Bring the new client up to date before any live traffic.
	h.sendScenario(client)
	h.sendSnapshot(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeSetContracted:
		var p SetContractedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid capacity:set payload: %v", err)
			return
		}
		h.engine.SetContractedCapacity(p.ContractedCapacityKW)

	case TypeSetBattery:
		var p SetBatteryPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid battery:set payload: %v", err)
			return
		}
		h.engine.SetBatteryCapacity(p.BatteryCapacityKW)

	case TypeOptimize:
		h.engine.Optimize()

	case TypePointerEvent:
		var p PointerEventPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid pointer:event payload: %v", err)
			return
		}
		ev, ok := PointerEventFrom(p)
		if !ok {
			log.Printf("Unknown pointer kind: %s", p.Kind)
			return
		}
		h.engine.Pointer(ev)

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

func (h *Handler) sendScenario(c *Client) {
	msg, err := NewEnvelope(TypeScenarioLoaded, ScenarioLoadedFrom(h.engine.Scenario()))
	if err != nil {
		log.Printf("Error creating scenario:loaded message: %v", err)
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Handler) sendSnapshot(c *Client) {
	msg, err := NewEnvelope(TypeReportUpdate, h.engine.Snapshot())
	if err != nil {
		log.Printf("Error creating report:update message: %v", err)
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
