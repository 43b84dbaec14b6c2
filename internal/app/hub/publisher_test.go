package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pulsehub/internal/app/user"
)

func TestHub_PublishUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("it should persist the post and broadcast its creation", func(t *testing.T) {
		users := newFakeUserStore(
			user.User{ID: "alice", Nickname: "Alice", ShowOnlineStatus: true},
		)
		updates := newFakeUpdateStore()
		h := NewHub(users, &fakeMessageStore{}, updates)

		organizer := newTestClient(h)
		observer := newTestClient(h)
		h.JoinUserRoom(organizer, "alice")

		h.PublishUpdate(ctx, organizer, CreateUpdatePayload{Title: "launch", Description: "v2 is out"})

		for _, c := range []*Client{organizer, observer} {
			env := recvEvent(t, c)
			require.Equal(t, EventNewUpdate, env.Type)

			var payload NewUpdatePayload
			decodePayload(t, env, &payload)
			require.Equal(t, "launch", payload.Update.Title)
			require.Equal(t, "alice", payload.Update.OrganizerID)
			require.Equal(t, "Alice", payload.Organizer.Nickname)
			require.Zero(t, payload.Update.Likes)
			require.Zero(t, payload.Update.Dislikes)
			require.Empty(t, payload.Update.Reactions)
		}

		stored := updates.get(t, "update-1")
		require.Equal(t, "launch", stored.Title)
	})

	t.Run("it should reject an unauthenticated connection", func(t *testing.T) {
		h, updates := reactionFixture()

		anon := newTestClient(h)
		h.PublishUpdate(ctx, anon, CreateUpdatePayload{Title: "launch"})

		require.Equal(t, EventUpdateError, recvEvent(t, anon).Type)
		require.Empty(t, updates.posts)
	})

	t.Run("it should require a title", func(t *testing.T) {
		h, updates := reactionFixture()

		organizer := newTestClient(h)
		h.JoinUserRoom(organizer, "alice")

		h.PublishUpdate(ctx, organizer, CreateUpdatePayload{Description: "no title"})

		require.Equal(t, EventUpdateError, recvEvent(t, organizer).Type)
		require.Empty(t, updates.posts)
	})
}

// compile-time checks that the fakes satisfy the store contracts.
var (
	_ UserStore    = (*fakeUserStore)(nil)
	_ MessageStore = (*fakeMessageStore)(nil)
	_ UpdateStore  = (*fakeUpdateStore)(nil)
)
