/*
Package store contains the PostgreSQL implementations of the hub's store
contracts: user profiles and settings, direct messages, and update posts with
their reactions.
*/
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pulsehub/internal/app/user"
)

// AssetResolver turns stored avatar keys into client-facing URLs.
type AssetResolver interface {
	PublicURL(key string) string
}

// UserStore reads and writes user rows.
type UserStore struct {
	pool   *pgxpool.Pool
	assets AssetResolver
}

// NewUserStore constructs a UserStore. assets may be nil, in which case avatar
// keys are returned unresolved.
func NewUserStore(pool *pgxpool.Pool, assets AssetResolver) *UserStore {
	return &UserStore{pool: pool, assets: assets}
}

// FindUsersByIDIn resolves display profiles and visibility preferences for the
// given ids. Unknown ids are omitted from the result.
func (s *UserStore) FindUsersByIDIn(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, nickname, avatar_key, show_online_status
		FROM users
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, len(ids))
	for rows.Next() {
		var u user.User
		var avatarKey string
		if err := rows.Scan(&u.ID, &u.Nickname, &avatarKey, &u.ShowOnlineStatus); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.Avatar = s.resolveAvatar(avatarKey)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

// SetOnlineStatus persists the user's online flag and last-seen timestamp.
func (s *UserStore) SetOnlineStatus(ctx context.Context, userID string, online bool, lastSeen time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users
		SET is_online = $2, last_seen = $3
		WHERE id = $1`, userID, online, lastSeen)
	if err != nil {
		return fmt.Errorf("update online status: %w", err)
	}
	return nil
}

// UpsertSettings applies a partial settings update and returns the resulting
// settings record. Nil patch fields leave the stored values unchanged.
func (s *UserStore) UpsertSettings(ctx context.Context, userID string, patch user.SettingsPatch) (user.Settings, error) {
	var settings user.Settings

	err := s.pool.QueryRow(ctx, `
		UPDATE users
		SET show_online_status = COALESCE($2, show_online_status)
		WHERE id = $1
		RETURNING show_online_status`, userID, patch.ShowOnlineStatus).
		Scan(&settings.ShowOnlineStatus)
	if err != nil {
		return user.Settings{}, fmt.Errorf("update settings for user %s: %w", userID, err)
	}

	return settings, nil
}

// SetAvatarKey records a newly uploaded avatar key for the user and returns
// the previously stored key so callers can reclaim the old object.
func (s *UserStore) SetAvatarKey(ctx context.Context, userID string, key string) (string, error) {
	var oldKey string

	err := s.pool.QueryRow(ctx, `
		UPDATE users u
		SET avatar_key = $2
		FROM (SELECT id, avatar_key FROM users WHERE id = $1 FOR UPDATE) prev
		WHERE u.id = prev.id
		RETURNING prev.avatar_key`, userID, key).
		Scan(&oldKey)
	if err != nil {
		return "", fmt.Errorf("update avatar key for user %s: %w", userID, err)
	}

	return oldKey, nil
}

func (s *UserStore) resolveAvatar(key string) string {
	if key == "" {
		return ""
	}
	if s.assets == nil {
		return key
	}
	return s.assets.PublicURL(key)
}
