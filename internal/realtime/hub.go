// Package realtime manages the WebSocket channels: private chat, global
// chat, notifications and online status. One hub exists per channel type for
// the lifetime of the process; clients join rooms within it.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/miron-alexandru/PlayStyleCompass/pkg/logger"
	"github.com/rs/zerolog"
)

// Hub tracks the clients subscribed to each room of one channel type.
// A slow client whose send buffer fills up is dropped rather than allowed to
// stall delivery to the rest of the room.
type Hub struct {
	name string
	log  zerolog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub(name string) *Hub {
	return &Hub{
		name:  name,
		log:   logger.With(name),
		rooms: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*Client]bool)
		h.rooms[room] = clients
	}
	clients[c] = true
	c.rooms[room] = true
}

func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(room, c)
}

// Remove detaches the client from every room it joined.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		h.removeLocked(room, c)
	}
}

func (h *Hub) removeLocked(room string, c *Client) {
	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(clients, c)
	delete(c.rooms, room)
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast marshals payload and delivers it to every client in the room.
func (h *Hub) Broadcast(room string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to encode frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- data:
		default:
			// Send buffer full: the client stopped draining. Close it out.
			h.log.Warn().Str("room", room).Msg("dropping slow client")
			close(c.send)
			for r := range c.rooms {
				h.removeLocked(r, c)
			}
		}
	}
}

// RoomSize reports how many clients are in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Channel-type hubs, initialized once at startup.
var (
	Chat       *Hub
	GlobalChat *Hub
	Notify     *Hub
	Presence   *Hub
)

func Init() {
	Chat = NewHub("chat")
	GlobalChat = NewHub("global_chat")
	Notify = NewHub("notify")
	Presence = NewHub("presence")
}
