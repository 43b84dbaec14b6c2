/*
Package hub contains the realtime core: the connection registry, the presence
broadcaster, the direct message relay, the reaction aggregator, and the update
publisher. It owns all in-memory connection state and pushes derived state back
out to connected clients.

This file defines the Registry, the bidirectional index between user identities
and their live connections. A user is online iff they own at least one live
connection; multiple simultaneous connections (tabs, devices) per user are
expected and supported.
*/
package hub

import (
	"sync"
)

// Registry maps user identities to their live connections and back.
// The reverse index keeps disconnect handling O(1) instead of scanning
// every online user.
type Registry struct {
	// mu protects both maps.
	mu sync.RWMutex

	// byUser maps a user id to the set of connections currently associated with it.
	// An entry exists iff the user has at least one live connection.
	byUser map[string]map[*Client]struct{}

	// byConn maps a connection back to the user id that owns it.
	byConn map[*Client]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]map[*Client]struct{}),
		byConn: make(map[*Client]string),
	}
}

// Associate registers a connection under a user. It is idempotent for an
// already associated pair. A connection previously associated with a different
// user is moved.
func (r *Registry) Associate(userID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byConn[c]; ok {
		if prev == userID {
			return
		}
		r.removeLocked(prev, c)
	}

	conns, ok := r.byUser[userID]
	if !ok {
		conns = make(map[*Client]struct{})
		r.byUser[userID] = conns
	}
	conns[c] = struct{}{}
	r.byConn[c] = userID
}

// Disassociate removes the connection from whichever user owns it. It returns
// the owning user id only if this removal emptied that user's connection set,
// i.e. the user transitioned to fully offline.
func (r *Registry) Disassociate(c *Client) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[c]
	if !ok {
		return "", false
	}

	r.removeLocked(userID, c)

	if _, stillOnline := r.byUser[userID]; stillOnline {
		return "", false
	}
	return userID, true
}

// RemoveUser drops the user's entire presence entry, disassociating every
// connection it owns. It reports whether the user was online.
func (r *Registry) RemoveUser(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.byUser[userID]
	if !ok {
		return false
	}

	for c := range conns {
		delete(r.byConn, c)
	}
	delete(r.byUser, userID)
	return true
}

// IsOnline reports whether the user has at least one live connection.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byUser[userID]
	return ok
}

// OnlineUserIDs returns the identities of every user with a live connection.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byUser))
	for id := range r.byUser {
		ids = append(ids, id)
	}
	return ids
}

// Connections returns the live connections currently associated with the user.
func (r *Registry) Connections(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.byUser[userID]
	out := make([]*Client, 0, len(conns))
	for c := range conns {
		out = append(out, c)
	}
	return out
}

// Owner returns the user id a connection is associated with, if any.
func (r *Registry) Owner(c *Client) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byConn[c]
	return userID, ok
}

// removeLocked deletes one association. The caller holds mu.
func (r *Registry) removeLocked(userID string, c *Client) {
	delete(r.byConn, c)

	conns, ok := r.byUser[userID]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(r.byUser, userID)
	}
}
