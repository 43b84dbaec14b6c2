package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsehub/internal/app/db"
	"pulsehub/internal/app/social"
	"pulsehub/internal/pkg/randx"
)

// UpdateStore persists update posts and their reaction lists.
type UpdateStore struct {
	pool *pgxpool.Pool
}

// NewUpdateStore constructs an UpdateStore.
func NewUpdateStore(pool *pgxpool.Pool) *UpdateStore {
	return &UpdateStore{pool: pool}
}

// CreateUpdate stores a new post with zero counts and an empty reaction list.
func (s *UpdateStore) CreateUpdate(ctx context.Context, organizerID, title, description string) (social.UpdatePost, error) {
	post := social.UpdatePost{
		ID:          randx.UpdateID(),
		Title:       title,
		Description: description,
		OrganizerID: organizerID,
		Reactions:   []social.Reaction{},
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO updates (id, title, description, organizer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		post.ID, post.Title, post.Description, post.OrganizerID).
		Scan(&post.CreatedAt)
	if err != nil {
		return social.UpdatePost{}, fmt.Errorf("insert update: %w", err)
	}

	return post, nil
}

// UpdateByID loads a post with its reaction list. It returns
// social.ErrUpdateNotFound if the id does not resolve.
func (s *UpdateStore) UpdateByID(ctx context.Context, id string) (social.UpdatePost, error) {
	var post social.UpdatePost

	err := s.pool.QueryRow(ctx, `
		SELECT id, title, description, organizer_id, likes, dislikes, created_at
		FROM updates
		WHERE id = $1`, id).
		Scan(&post.ID, &post.Title, &post.Description, &post.OrganizerID,
			&post.Likes, &post.Dislikes, &post.CreatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return social.UpdatePost{}, social.ErrUpdateNotFound
		}
		return social.UpdatePost{}, fmt.Errorf("query update %s: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT user_id, reaction_type
		FROM update_reactions
		WHERE update_id = $1
		ORDER BY created_at`, id)
	if err != nil {
		return social.UpdatePost{}, fmt.Errorf("query reactions for update %s: %w", id, err)
	}
	defer rows.Close()

	post.Reactions = []social.Reaction{}
	for rows.Next() {
		var r social.Reaction
		if err := rows.Scan(&r.UserID, &r.Type); err != nil {
			return social.UpdatePost{}, fmt.Errorf("scan reaction row: %w", err)
		}
		post.Reactions = append(post.Reactions, r)
	}
	if err := rows.Err(); err != nil {
		return social.UpdatePost{}, fmt.Errorf("iterate reaction rows: %w", err)
	}

	return post, nil
}

// SaveUpdate persists the post's counts and reaction list in one transaction,
// so a count bump can never land without its reaction record.
func (s *UpdateStore) SaveUpdate(ctx context.Context, post social.UpdatePost) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin save update tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE updates
		SET likes = $2, dislikes = $3
		WHERE id = $1`, post.ID, post.Likes, post.Dislikes)
	if err != nil {
		return fmt.Errorf("update counts for %s: %w", post.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return social.ErrUpdateNotFound
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM update_reactions
		WHERE update_id = $1`, post.ID); err != nil {
		return fmt.Errorf("clear reactions for %s: %w", post.ID, err)
	}

	for _, r := range post.Reactions {
		if _, err := tx.Exec(ctx, `
			INSERT INTO update_reactions (update_id, user_id, reaction_type)
			VALUES ($1, $2, $3)`, post.ID, r.UserID, r.Type); err != nil {
			return fmt.Errorf("insert reaction for %s: %w", post.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save update tx: %w", err)
	}

	return nil
}
