package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client is one live connection subscribed for a user. A user may hold any
// number of simultaneous connections (multiple tabs, devices).
type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
}

// Hub is the per-user publish channel: a map from user id to the set of
// live connections. The lock is only held while touching the map; actual
// network writes happen on each connection's writer goroutine draining
// the Send channel, so publish order per connection is channel order.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[string]*Client)}
}

// Subscribe associates a connection with its user.
func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	set, ok := h.subs[c.UserID]
	if !ok {
		set = make(map[string]*Client)
		h.subs[c.UserID] = set
	}
	set[c.ID] = c
	h.mu.Unlock()
	logrus.WithFields(logrus.Fields{"client": c.ID, "user_id": c.UserID}).Debug("client subscribed")
}

// Unsubscribe removes a connection from all associations and closes its
// send channel. Safe to call more than once per client.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[c.UserID]
	if !ok {
		return
	}
	if old, ok := set[c.ID]; ok {
		delete(set, c.ID)
		close(old.Send)
	}
	if len(set) == 0 {
		delete(h.subs, c.UserID)
	}
}

// Publish delivers payload to every connection currently subscribed for
// userID. With no subscribers the event is silently dropped: no queueing,
// no persistence, no redelivery. A connection with a full buffer is
// skipped rather than blocked on.
func (h *Hub) Publish(userID uuid.UUID, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("marshal publish payload")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.subs[userID] {
		select {
		case client.Send <- payload:
		default:
			// slow consumer, drop
		}
	}
}

// Subscribers reports how many connections are live for a user.
func (h *Hub) Subscribers(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
