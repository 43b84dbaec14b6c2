/*
This file implements the presence side of the hub: associating connections with
users, the login/logout lifecycle, visibility-setting changes, and the presence
broadcaster that publishes the online-and-visible user set.
*/
package hub

import (
	"context"
	"time"

	"pulsehub/internal/app/user"
	"pulsehub/internal/pkg/errs"
)

// JoinUserRoom associates the connection with the user's broadcast group so
// that targeted deliveries (newMessage, messageSent) reach it. It does not
// touch persisted state and triggers no broadcast.
func (h *Hub) JoinUserRoom(c *Client, userID string) {
	if userID == "" {
		return
	}

	h.registry.Associate(userID, c)
	c.setUserID(userID)
}

// Login registers the user's presence on this connection, marks the user
// online in the store, and publishes a fresh presence snapshot.
func (h *Hub) Login(ctx context.Context, c *Client, userID string) {
	if userID == "" {
		return
	}

	h.registry.Associate(userID, c)
	c.setUserID(userID)

	if err := h.users.SetOnlineStatus(ctx, userID, true, time.Now()); err != nil {
		// The registry is the in-memory truth; the persisted flag is a
		// projection and a failed write must not block presence.
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to persist online status on login.")
	}

	h.BroadcastPresence(ctx)
}

// Logout removes the user's presence entry entirely, across all of their
// connections, marks the user offline, and publishes a fresh snapshot.
func (h *Hub) Logout(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	wasOnline := h.registry.RemoveUser(userID)

	if err := h.users.SetOnlineStatus(ctx, userID, false, time.Now()); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to persist offline status on logout.")
	}

	if wasOnline {
		h.BroadcastPresence(ctx)
	}
}

// Unregister handles the disconnect of a transport connection. If it was the
// user's last live connection, the user goes fully offline and a fresh
// snapshot is published.
func (h *Hub) Unregister(ctx context.Context, c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	c.closeSend()

	userID, wentOffline := h.registry.Disassociate(c)
	if !wentOffline {
		return
	}

	h.logger.Info().Str("user_id", userID).Msg("Last connection closed, user offline.")

	if err := h.users.SetOnlineStatus(ctx, userID, false, time.Now()); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to persist offline status on disconnect.")
	}

	h.BroadcastPresence(ctx)
}

// UpdateSettings persists a partial settings update for the connection's user.
// A change to the visibility preference republishes the presence snapshot.
func (h *Hub) UpdateSettings(ctx context.Context, c *Client, patch user.SettingsPatch) {
	userID := c.UserID()
	if userID == "" {
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrUnauthenticated))
		return
	}

	if _, err := h.users.UpsertSettings(ctx, userID, patch); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to persist settings update.")
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrPersistenceFailed))
		return
	}

	if patch.ShowOnlineStatus != nil {
		h.BroadcastPresence(ctx)
	}
}

// BroadcastPresence publishes the current online-and-visible user set to every
// connection. The snapshot is computed on demand and never cached: a store
// failure is logged and the broadcast skipped for this attempt.
func (h *Hub) BroadcastPresence(ctx context.Context) {
	ids := h.registry.OnlineUserIDs()

	visible := make([]user.User, 0, len(ids))

	if len(ids) > 0 {
		users, err := h.users.FindUsersByIDIn(ctx, ids)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to load profiles for presence snapshot, skipping broadcast.")
			return
		}

		for _, u := range users {
			if u.ShowOnlineStatus {
				visible = append(visible, u)
			}
		}
	}

	h.broadcast(EventOnlineUsers, visible)
}
