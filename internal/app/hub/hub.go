/*
This file defines the Hub, the single coordinating component of the realtime
core. It tracks every live connection, owns the connection registry, and fans
events out to all, or to targeted, connections.
*/
package hub

import (
	"sync"

	"github.com/rs/zerolog"

	"pulsehub/internal/pkg/errs"
	"pulsehub/internal/pkg/logx"
)

// Hub coordinates all live connections of the process.
type Hub struct {
	// registry is the bidirectional user/connection index.
	registry *Registry

	// users, messages, and updates are the external store collaborators.
	users    UserStore
	messages MessageStore
	updates  UpdateStore

	// mu protects the clients set.
	mu sync.RWMutex

	// clients holds every live connection, associated with a user or not.
	clients map[*Client]struct{}

	// updateLocks serializes reaction toggles per update id.
	updateLocks *keyedMutex

	// structured logger with hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub wired to the given store collaborators.
func NewHub(users UserStore, messages MessageStore, updates UpdateStore) *Hub {
	hubLogger := logx.Logger().With().Str("component", "Hub").Logger()

	return &Hub{
		registry:    NewRegistry(),
		users:       users,
		messages:    messages,
		updates:     updates,
		clients:     make(map[*Client]struct{}),
		updateLocks: newKeyedMutex(),
		logger:      hubLogger,
	}
}

// Registry exposes the hub's connection registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Register adds a freshly upgraded connection to the hub. The connection stays
// anonymous until a joinUserRoom or userLogin event associates it with a user.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Int("total_connections", total).Msg("Connection registered.")
}

// Shutdown closes the send queue of every live connection. In-flight handlers
// finish on their own; their deliveries become no-ops.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.closeSend()
	}
	h.clients = make(map[*Client]struct{})

	h.logger.Info().Msg("Hub shutdown complete.")
}

// broadcast fans one event out to every live connection. Delivery is
// best-effort per connection.
func (h *Hub) broadcast(t EventType, payload any) {
	frame, err := encodeEvent(t, payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event", string(t)).Msg("Error marshaling event for broadcast.")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		c.enqueue(frame)
	}
}

// sendToUser delivers one event to every connection currently associated with
// the user. A user with no live connections receives nothing; there is no
// queuing or retry.
func (h *Hub) sendToUser(userID string, t EventType, payload any) {
	conns := h.registry.Connections(userID)
	if len(conns) == 0 {
		return
	}

	frame, err := encodeEvent(t, payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event", string(t)).Msg("Error marshaling targeted event.")
		return
	}

	for _, c := range conns {
		c.enqueue(frame)
	}
}

// sendError delivers a targeted error event to a single connection.
func (h *Hub) sendError(c *Client, t EventType, customErr *errs.CustomError) {
	frame, err := encodeEvent(t, ErrorPayload{Message: customErr.Message})
	if err != nil {
		h.logger.Error().Err(err).Str("event", string(t)).Msg("Error marshaling error event.")
		return
	}
	c.enqueue(frame)
}
