// Package realtime relays progress events between an account's live
// websocket connections. The hub is a plain in-process broadcast group per
// user: no persistence, no acknowledgements, no ordering. A client that was
// offline re-fetches state over HTTP on reconnect.
package realtime

import (
	"encoding/json"
	"sync"
)

// Conn is the write surface the hub needs from a live connection.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// InboundEvent is what clients send over the socket.
type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutboundEvent is what the hub fans out.
type OutboundEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Hub struct {
	mu      sync.RWMutex
	members map[uint]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{members: make(map[uint]map[Conn]struct{})}
}

func (h *Hub) Join(userID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.members[userID] == nil {
		h.members[userID] = make(map[Conn]struct{})
	}
	h.members[userID][conn] = struct{}{}
}

func (h *Hub) Leave(userID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.members[userID], conn)
	if len(h.members[userID]) == 0 {
		delete(h.members, userID)
	}
}

// BroadcastToOthers delivers the event to every connection of the user
// except the sender.
func (h *Hub) BroadcastToOthers(userID uint, sender Conn, event OutboundEvent) {
	for _, conn := range h.snapshot(userID) {
		if conn == sender {
			continue
		}
		_ = conn.WriteJSON(event)
	}
}

// BroadcastToAll delivers the event to every connection of the user,
// the sender included.
func (h *Hub) BroadcastToAll(userID uint, event OutboundEvent) {
	for _, conn := range h.snapshot(userID) {
		_ = conn.WriteJSON(event)
	}
}

// snapshot copies the membership under the read lock so writes happen
// outside it and joins or leaves never block delivery. Write errors are
// ignored; a dead connection is removed when its read loop exits.
func (h *Hub) snapshot(userID uint) []Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]Conn, 0, len(h.members[userID]))
	for conn := range h.members[userID] {
		conns = append(conns, conn)
	}
	return conns
}
