/*
This file implements the reaction aggregator. Each toggle is a read-modify-write
over one update post: load the post, apply the transition, persist, broadcast.
Toggles on the same update serialize through a keyed mutex so concurrent users
cannot lose each other's reactions; different updates proceed independently.
*/
package hub

import (
	"context"
	"errors"

	"pulsehub/internal/app/social"
	"pulsehub/internal/pkg/errs"
)

// React handles an inbound updateReaction event from connection c. On success
// the full recomputed post, counts and reaction list included, is broadcast to
// every connection.
func (h *Hub) React(ctx context.Context, c *Client, p UpdateReactionPayload) {
	userID := c.UserID()
	if userID == "" {
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrUnauthenticated))
		return
	}

	if !p.ReactionType.Valid() {
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrReactionTypeInvalid))
		return
	}

	unlock := h.updateLocks.Lock(p.UpdateID)
	post, err := h.reactLocked(ctx, userID, p)
	unlock()

	if err != nil {
		if errors.Is(err, social.ErrUpdateNotFound) {
			h.sendError(c, EventUpdateError, errs.NewError(errs.ErrUpdateNotFound))
			return
		}

		h.logger.Error().Err(err).
			Str("update_id", p.UpdateID).
			Str("user_id", userID).
			Msg("Failed to persist reaction toggle.")
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrPersistenceFailed))
		return
	}

	h.broadcast(EventUpdateReaction, post)
}

// reactLocked performs the load-toggle-save cycle. The caller holds the
// per-update lock.
func (h *Hub) reactLocked(ctx context.Context, userID string, p UpdateReactionPayload) (social.UpdatePost, error) {
	post, err := h.updates.UpdateByID(ctx, p.UpdateID)
	if err != nil {
		return social.UpdatePost{}, err
	}

	result := post.ToggleReaction(userID, p.ReactionType)

	if err := h.updates.SaveUpdate(ctx, post); err != nil {
		return social.UpdatePost{}, err
	}

	h.logger.Debug().
		Str("update_id", post.ID).
		Str("user_id", userID).
		Int("toggle_result", int(result)).
		Int("likes", post.Likes).
		Int("dislikes", post.Dislikes).
		Msg("Reaction toggled.")

	return post, nil
}
