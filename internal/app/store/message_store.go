package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pulsehub/internal/app/social"
	"pulsehub/internal/pkg/randx"
)

// MessageStore persists direct messages. Messages are append-only: once
// created they are never mutated or deleted by the realtime core.
type MessageStore struct {
	pool *pgxpool.Pool
}

// NewMessageStore constructs a MessageStore.
func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

// CreateMessage stores a new direct message and returns the persisted record.
func (s *MessageStore) CreateMessage(ctx context.Context, senderID, recipientID, text string) (social.DirectMessage, error) {
	msg := social.DirectMessage{
		ID:          randx.MessageID(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, recipient_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.Text).
		Scan(&msg.CreatedAt)
	if err != nil {
		return social.DirectMessage{}, fmt.Errorf("insert message: %w", err)
	}

	return msg, nil
}
