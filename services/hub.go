package services

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

// LobbyGroup is the distinguished group backing the room-listing view.
const LobbyGroup = "lobby"

// RoomGroup names the broadcast group for a room id.
func RoomGroup(roomID uint) string {
	return strconv.FormatUint(uint64(roomID), 10)
}

// Broadcaster is what the coordinator needs from the transport layer.
type Broadcaster interface {
	Broadcast(group, event string, data any)
}

// Hub groups connections by name ("lobby" plus one group per room) and
// fans events out to every subscriber. Delivery is ordered per
// connection; a slow client's messages are dropped rather than letting
// it stall the room.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{groups: make(map[string]map[*Client]bool)}
}

func (h *Hub) Subscribe(c *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.groups[group]
	if !ok {
		clients = make(map[*Client]bool)
		h.groups[group] = clients
	}
	clients[c] = true
	c.groups[group] = true
	logger.Debugf("[Hub] conn %s subscribed to %q", c.id, group)
}

func (h *Hub) Unsubscribe(c *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(c, group)
}

func (h *Hub) unsubscribeLocked(c *Client, group string) {
	if clients, ok := h.groups[group]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.groups, group)
		}
	}
	delete(c.groups, group)
}

// RemoveClient drops the connection from every group it joined.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for group := range c.groups {
		h.unsubscribeLocked(c, group)
	}
}

// Broadcast sends one event to every subscriber of group, including
// the originator if subscribed.
func (h *Hub) Broadcast(group, event string, data any) {
	raw, err := marshalEnvelope(event, data)
	if err != nil {
		logger.Errorf("[Hub] marshal %q event: %v", event, err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.groups[group]))
	for c := range h.groups[group] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.queue(raw, event)
	}
}

func marshalEnvelope(event string, data any) ([]byte, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: rawData})
}
