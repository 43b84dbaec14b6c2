/*
This file implements the update publisher: creating a shared update post and
announcing it to every connection. Posts start with an empty reaction list and
zero counts; there is no edit or delete path.
*/
package hub

import (
	"context"

	"pulsehub/internal/pkg/errs"
)

// PublishUpdate handles an inbound createUpdate event from connection c.
func (h *Hub) PublishUpdate(ctx context.Context, c *Client, p CreateUpdatePayload) {
	organizerID := c.UserID()
	if organizerID == "" {
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrUnauthenticated))
		return
	}

	if p.Title == "" {
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrUpdateTitleRequired))
		return
	}

	post, err := h.updates.CreateUpdate(ctx, organizerID, p.Title, p.Description)
	if err != nil {
		h.logger.Error().Err(err).
			Str("organizer_id", organizerID).
			Msg("Failed to persist update post.")
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrPersistenceFailed))
		return
	}

	profiles, err := h.users.FindUsersByIDIn(ctx, []string{organizerID})
	if err != nil {
		// The post is stored; the creation announcement could not be enriched.
		h.logger.Error().Err(err).
			Str("update_id", post.ID).
			Msg("Failed to resolve organizer profile for stored update.")
		h.sendError(c, EventUpdateError, errs.NewError(errs.ErrDeliveryFailed))
		return
	}

	payload := NewUpdatePayload{Update: post}
	payload.Organizer, _ = profileByID(profiles, organizerID)

	h.broadcast(EventNewUpdate, payload)
}
