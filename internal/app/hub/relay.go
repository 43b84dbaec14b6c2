/*
This file implements the direct message relay: persist first, then best-effort
fan-out of the enriched message to the recipient's live connections and a
delivery echo to the sender's live connections.
*/
package hub

import (
	"context"

	"pulsehub/internal/app/social"
	"pulsehub/internal/app/user"
	"pulsehub/internal/pkg/errs"
)

// SendDirectMessage handles an inbound sendMessage event from connection c.
//
// The message is durably stored before any delivery begins; on persistence
// failure only the originating connection is told and no fan-out happens.
// A recipient with no live connections receives nothing, without error.
func (h *Hub) SendDirectMessage(ctx context.Context, c *Client, p SendMessagePayload) {
	senderID := c.UserID()
	if senderID == "" {
		h.sendError(c, EventMessageError, errs.NewError(errs.ErrUnauthenticated))
		return
	}

	if p.RecipientID == "" {
		h.sendError(c, EventMessageError, errs.NewError(errs.ErrRecipientRequired))
		return
	}

	if p.Text == "" {
		h.sendError(c, EventMessageError, errs.NewError(errs.ErrMessageTextEmpty))
		return
	}

	if len(p.Text) > social.MaxMessageBytes {
		h.sendError(c, EventMessageError, errs.NewError(errs.ErrMessageTextTooLong))
		return
	}

	msg, err := h.messages.CreateMessage(ctx, senderID, p.RecipientID, p.Text)
	if err != nil {
		h.logger.Error().Err(err).
			Str("sender_id", senderID).
			Str("recipient_id", p.RecipientID).
			Msg("Failed to persist direct message.")
		h.sendError(c, EventMessageError, errs.NewError(errs.ErrPersistenceFailed))
		return
	}

	profiles, err := h.users.FindUsersByIDIn(ctx, []string{senderID, p.RecipientID})
	if err != nil {
		// The message is stored; this is a delivery failure, not a loss.
		h.logger.Error().Err(err).
			Str("message_id", msg.ID).
			Msg("Failed to resolve profiles for stored message.")
		h.sendError(c, EventMessageError, errs.NewError(errs.ErrDeliveryFailed))
		return
	}

	outbound := OutboundMessage{DirectMessage: msg}
	outbound.Sender, _ = profileByID(profiles, senderID)
	outbound.Recipient, _ = profileByID(profiles, p.RecipientID)

	h.sendToUser(p.RecipientID, EventNewMessage, outbound)
	h.sendToUser(senderID, EventMessageSent, outbound)
}

// profileByID picks a profile out of a store result by user id.
func profileByID(profiles []user.User, id string) (user.User, bool) {
	for _, u := range profiles {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}
