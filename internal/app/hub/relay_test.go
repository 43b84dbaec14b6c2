package hub

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pulsehub/internal/app/user"
)

func relayFixture() (*Hub, *fakeUserStore, *fakeMessageStore) {
	users := newFakeUserStore(
		user.User{ID: "alice", Nickname: "Alice", ShowOnlineStatus: true},
		user.User{ID: "bob", Nickname: "Bob", ShowOnlineStatus: true},
	)
	messages := &fakeMessageStore{}
	h := NewHub(users, messages, newFakeUpdateStore())
	return h, users, messages
}

func TestHub_SendDirectMessage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("it should persist before delivering and echo to the sender", func(t *testing.T) {
		h, _, messages := relayFixture()

		sender := newTestClient(h)
		recipient := newTestClient(h)
		h.JoinUserRoom(sender, "alice")
		h.JoinUserRoom(recipient, "bob")

		h.SendDirectMessage(ctx, sender, SendMessagePayload{RecipientID: "bob", Text: "hey"})

		stored := messages.stored()
		require.Len(t, stored, 1)
		require.Equal(t, "alice", stored[0].SenderID)
		require.Equal(t, "bob", stored[0].RecipientID)

		env := recvEvent(t, recipient)
		require.Equal(t, EventNewMessage, env.Type)
		var delivered OutboundMessage
		decodePayload(t, env, &delivered)
		require.Equal(t, "hey", delivered.Text)
		require.Equal(t, "Alice", delivered.Sender.Nickname)
		require.Equal(t, "Bob", delivered.Recipient.Nickname)

		echo := recvEvent(t, sender)
		require.Equal(t, EventMessageSent, echo.Type)
	})

	t.Run("it should deliver to every connection of both parties", func(t *testing.T) {
		h, _, _ := relayFixture()

		senderTab1 := newTestClient(h)
		senderTab2 := newTestClient(h)
		recipientTab1 := newTestClient(h)
		recipientTab2 := newTestClient(h)
		h.JoinUserRoom(senderTab1, "alice")
		h.JoinUserRoom(senderTab2, "alice")
		h.JoinUserRoom(recipientTab1, "bob")
		h.JoinUserRoom(recipientTab2, "bob")

		h.SendDirectMessage(ctx, senderTab1, SendMessagePayload{RecipientID: "bob", Text: "hey"})

		require.Equal(t, EventNewMessage, recvEvent(t, recipientTab1).Type)
		require.Equal(t, EventNewMessage, recvEvent(t, recipientTab2).Type)
		require.Equal(t, EventMessageSent, recvEvent(t, senderTab1).Type)
		require.Equal(t, EventMessageSent, recvEvent(t, senderTab2).Type)
	})

	t.Run("it should reject an unauthenticated connection with no side effects", func(t *testing.T) {
		h, _, messages := relayFixture()

		anon := newTestClient(h)
		h.SendDirectMessage(ctx, anon, SendMessagePayload{RecipientID: "bob", Text: "hey"})

		env := recvEvent(t, anon)
		require.Equal(t, EventMessageError, env.Type)
		require.Empty(t, messages.stored())
	})

	t.Run("it should persist for an offline recipient and deliver nothing", func(t *testing.T) {
		h, _, messages := relayFixture()

		sender := newTestClient(h)
		h.JoinUserRoom(sender, "alice")

		h.SendDirectMessage(ctx, sender, SendMessagePayload{RecipientID: "bob", Text: "hey"})

		require.Len(t, messages.stored(), 1)

		// only the echo, no error
		env := recvEvent(t, sender)
		require.Equal(t, EventMessageSent, env.Type)
		requireNoEvent(t, sender)
	})

	t.Run("it should report persistence failure to the originating connection only", func(t *testing.T) {
		h, _, messages := relayFixture()
		messages.fail = true

		senderTab1 := newTestClient(h)
		senderTab2 := newTestClient(h)
		recipient := newTestClient(h)
		h.JoinUserRoom(senderTab1, "alice")
		h.JoinUserRoom(senderTab2, "alice")
		h.JoinUserRoom(recipient, "bob")

		h.SendDirectMessage(ctx, senderTab1, SendMessagePayload{RecipientID: "bob", Text: "hey"})

		env := recvEvent(t, senderTab1)
		require.Equal(t, EventMessageError, env.Type)
		requireNoEvent(t, senderTab2)
		requireNoEvent(t, recipient)
		require.Empty(t, messages.stored())
	})

	t.Run("it should report delivery failure when enrichment fails after persistence", func(t *testing.T) {
		h, users, messages := relayFixture()
		users.failFind = true

		sender := newTestClient(h)
		recipient := newTestClient(h)
		h.JoinUserRoom(sender, "alice")
		h.JoinUserRoom(recipient, "bob")

		h.SendDirectMessage(ctx, sender, SendMessagePayload{RecipientID: "bob", Text: "hey"})

		// stored, but undeliverable
		require.Len(t, messages.stored(), 1)
		env := recvEvent(t, sender)
		require.Equal(t, EventMessageError, env.Type)
		requireNoEvent(t, recipient)
	})

	t.Run("it should reject empty and oversized text", func(t *testing.T) {
		h, _, messages := relayFixture()

		sender := newTestClient(h)
		h.JoinUserRoom(sender, "alice")

		h.SendDirectMessage(ctx, sender, SendMessagePayload{RecipientID: "bob", Text: ""})
		require.Equal(t, EventMessageError, recvEvent(t, sender).Type)

		h.SendDirectMessage(ctx, sender, SendMessagePayload{
			RecipientID: "bob",
			Text:        strings.Repeat("a", 5001),
		})
		require.Equal(t, EventMessageError, recvEvent(t, sender).Type)

		require.Empty(t, messages.stored())
	})
}
