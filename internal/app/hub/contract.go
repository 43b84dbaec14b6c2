package hub

import (
	"context"
	"time"

	"pulsehub/internal/app/social"
	"pulsehub/internal/app/user"
)

// UserStore is the external store surface for user profiles and settings.
type UserStore interface {
	// FindUsersByIDIn resolves display profiles and visibility preferences
	// for the given user ids. Unknown ids are silently omitted.
	FindUsersByIDIn(ctx context.Context, ids []string) ([]user.User, error)

	// SetOnlineStatus persists the user's online flag and last-seen timestamp.
	SetOnlineStatus(ctx context.Context, userID string, online bool, lastSeen time.Time) error

	// UpsertSettings applies a partial settings update and returns the
	// resulting settings record.
	UpsertSettings(ctx context.Context, userID string, patch user.SettingsPatch) (user.Settings, error)
}

// MessageStore persists direct messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, senderID, recipientID, text string) (social.DirectMessage, error)
}

// UpdateStore persists update posts and their reactions.
type UpdateStore interface {
	CreateUpdate(ctx context.Context, organizerID, title, description string) (social.UpdatePost, error)

	// UpdateByID loads a post with its reaction list. It returns
	// social.ErrUpdateNotFound if the id does not resolve.
	UpdateByID(ctx context.Context, id string) (social.UpdatePost, error)

	// SaveUpdate persists the post's counts and reaction list atomically.
	SaveUpdate(ctx context.Context, post social.UpdatePost) error
}
