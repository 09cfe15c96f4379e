// Package realtime routes notification pushes to the open websocket
// connections of each user. The hub is plain in-process state owned by
// the server: when the process restarts, clients reconnect and re-auth;
// nothing is lost because every notification is persisted first.
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// UserChannel names the per-user delivery channel.
func UserChannel(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// RoleChannel names the optional per-role delivery channel.
func RoleChannel(role string) string {
	return "role:" + role
}

// Conn abstracts a websocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one live connection bound to exactly one user.
type Client struct {
	ID       string
	UserID   uint
	Channels []string
	Send     chan []byte
	conn     Conn
}

// Hub tracks clients per channel. All operations are safe for
// concurrent use.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
	all      map[*Client]struct{}
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]struct{}),
		all:      make(map[*Client]struct{}),
		log:      log,
	}
}

// Register binds a client into its channels.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}

	for _, ch := range client.Channels {
		if h.channels[ch] == nil {
			h.channels[ch] = make(map[*Client]struct{})
		}
		h.channels[ch][client] = struct{}{}
	}
}

// Unregister tears the binding down and closes the client's send
// channel. Safe to call twice.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	for _, ch := range client.Channels {
		if subscribers, ok := h.channels[ch]; ok {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.channels, ch)
			}
		}
	}

	delete(h.all, client)
	close(client.Send)
}

// Publish sends a payload to every client bound to the channel. A full
// client buffer is skipped so one slow consumer never blocks fan-out.
func (h *Hub) Publish(channel string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("realtime: marshal payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers, ok := h.channels[channel]
	if !ok {
		return
	}

	for client := range subscribers {
		select {
		case client.Send <- data:
		default:
			// Buffer full, drop for this client.
		}
	}
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// ChannelCount returns the number of connections bound to a channel.
func (h *Hub) ChannelCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
