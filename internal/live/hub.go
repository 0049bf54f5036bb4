// Package live implements the real-time synchronization core: a
// websocket hub of dashboard subscribers, a scheduler of recurring
// polling tasks, snapshot readers that broadcast full views of the
// order state, and status detectors that fire at-most-once
// notifications on tracked transitions.
package live

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub is the subscription registry. It tracks connected clients,
// fans broadcast events out to them, and fires lifecycle hooks when
// membership transitions 0->1 and 1->0 so polling only runs while
// somebody is listening.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	onFirst func()
	onLast  func()
	log     *logrus.Entry
}

func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		log:     log,
	}
}

// SetLifecycleHooks installs the callbacks invoked on the 0->1 and
// 1->0 membership transitions. Hooks run with the hub locked and must
// not call back into it. Must be called before clients connect.
func (h *Hub) SetLifecycleHooks(onFirst, onLast func()) {
	h.onFirst = onFirst
	h.onLast = onLast
}

// Register adds a client. Re-registering the same id is a no-op.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		h.mu.Unlock()
		return
	}
	h.clients[c.id] = c
	// Hooks run under the lock so the 0->1 and 1->0 transitions stay
	// strictly ordered under churn. The hooks only talk to the
	// scheduler, which never calls back into the hub.
	if len(h.clients) == 1 && h.onFirst != nil {
		h.onFirst()
	}
	h.mu.Unlock()

	h.log.WithField("subscriber", c.id).Info("subscriber connected")
}

// Unregister removes a client and closes its send queue. Safe to call
// for an id that is not registered.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		close(c.send)
		if len(h.clients) == 0 && h.onLast != nil {
			h.onLast()
		}
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	h.log.WithField("subscriber", id).Info("subscriber disconnected")
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Broadcast sends an event to every connected subscriber. A client
// whose send queue is full is dropped; it is expected to reconnect
// and receive a fresh snapshot.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		h.log.WithError(err).WithField("event", event).Error("failed to encode broadcast")
		return
	}

	h.mu.Lock()
	var dropped []string
	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, id)
			close(c.send)
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 && len(h.clients) == 0 && h.onLast != nil {
		h.onLast()
	}
	h.mu.Unlock()

	for _, id := range dropped {
		h.log.WithField("subscriber", id).Warn("dropped slow subscriber")
	}
}
