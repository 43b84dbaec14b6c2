/*
Package social contains the persisted record types of the realtime core: direct
messages exchanged between users and shared update posts with their reactions.
*/
package social

import "time"

const (
	// MaxMessageBytes is the maximum allowed size (in bytes) for direct message text.
	MaxMessageBytes = 5000
)

// DirectMessage is a point-to-point message between two users.
// It is persisted before delivery and immutable once created.
type DirectMessage struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender"`
	RecipientID string    `json:"recipient"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}
