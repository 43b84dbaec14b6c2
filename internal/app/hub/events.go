package hub

import (
	"encoding/json"

	"pulsehub/internal/app/social"
	"pulsehub/internal/app/user"
)

// EventType names a realtime event. Inbound and outbound names are part of the
// wire contract with existing clients and must not change.
type EventType string

// Inbound events.
const (
	EventJoinUserRoom   EventType = "joinUserRoom"
	EventSendMessage    EventType = "sendMessage"
	EventCreateUpdate   EventType = "createUpdate"
	EventUpdateReaction EventType = "updateReaction"
	EventUserLogin      EventType = "userLogin"
	EventUserLogout     EventType = "userLogout"
	EventUpdateSettings EventType = "updateSettings"
)

// Outbound events. EventUpdateReaction is reused for the broadcast of the
// recomputed update post.
const (
	EventOnlineUsers  EventType = "onlineUsers"
	EventNewMessage   EventType = "newMessage"
	EventMessageSent  EventType = "messageSent"
	EventNewUpdate    EventType = "newUpdate"
	EventMessageError EventType = "messageError"
	EventUpdateError  EventType = "updateError"
)

// Envelope is the frame exchanged over a WebSocket connection.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// encodeEvent marshals an outbound event frame.
func encodeEvent(t EventType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: t, Payload: raw})
}

// SendMessagePayload is the inbound payload of a sendMessage event.
type SendMessagePayload struct {
	RecipientID string `json:"recipientId"`
	Text        string `json:"text"`
}

// CreateUpdatePayload is the inbound payload of a createUpdate event.
type CreateUpdatePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateReactionPayload is the inbound payload of an updateReaction event.
type UpdateReactionPayload struct {
	UpdateID     string              `json:"updateId"`
	ReactionType social.ReactionType `json:"reactionType"`
}

// ErrorPayload is the targeted payload of messageError and updateError events.
type ErrorPayload struct {
	Message string `json:"message"`
}

// OutboundMessage is a direct message enriched with sender and recipient
// display profiles, delivered as newMessage and echoed as messageSent.
type OutboundMessage struct {
	social.DirectMessage
	Sender    user.User `json:"senderProfile"`
	Recipient user.User `json:"recipientProfile"`
}

// NewUpdatePayload is the broadcast payload of a newUpdate event.
type NewUpdatePayload struct {
	Update    social.UpdatePost `json:"update"`
	Organizer user.User         `json:"organizerProfile"`
}
