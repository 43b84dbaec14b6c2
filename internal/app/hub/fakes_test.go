package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pulsehub/internal/app/social"
	"pulsehub/internal/app/user"
)

// fakeUserStore is an in-memory UserStore for hub tests.
type fakeUserStore struct {
	mu            sync.Mutex
	users         map[string]user.User
	online        map[string]bool
	lastSeen      map[string]time.Time
	failFind      bool
	failSetStatus bool
	failUpsert    bool
}

func newFakeUserStore(users ...user.User) *fakeUserStore {
	f := &fakeUserStore{
		users:    make(map[string]user.User),
		online:   make(map[string]bool),
		lastSeen: make(map[string]time.Time),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) FindUsersByIDIn(_ context.Context, ids []string) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFind {
		return nil, fmt.Errorf("find users: store unavailable")
	}

	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) SetOnlineStatus(_ context.Context, userID string, online bool, lastSeen time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSetStatus {
		return fmt.Errorf("set online status: store unavailable")
	}

	f.online[userID] = online
	f.lastSeen[userID] = lastSeen
	return nil
}

func (f *fakeUserStore) UpsertSettings(_ context.Context, userID string, patch user.SettingsPatch) (user.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpsert {
		return user.Settings{}, fmt.Errorf("upsert settings: store unavailable")
	}

	u := f.users[userID]
	if patch.ShowOnlineStatus != nil {
		u.ShowOnlineStatus = *patch.ShowOnlineStatus
	}
	u.ID = userID
	f.users[userID] = u

	return user.Settings{ShowOnlineStatus: u.ShowOnlineStatus}, nil
}

// fakeMessageStore is an in-memory MessageStore for hub tests.
type fakeMessageStore struct {
	mu       sync.Mutex
	messages []social.DirectMessage
	fail     bool
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, senderID, recipientID, text string) (social.DirectMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return social.DirectMessage{}, fmt.Errorf("create message: store unavailable")
	}

	msg := social.DirectMessage{
		ID:          fmt.Sprintf("msg-%d", len(f.messages)+1),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		CreatedAt:   time.Now(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeMessageStore) stored() []social.DirectMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]social.DirectMessage(nil), f.messages...)
}

// fakeUpdateStore is an in-memory UpdateStore for hub tests.
type fakeUpdateStore struct {
	mu       sync.Mutex
	posts    map[string]social.UpdatePost
	nextID   int
	failSave bool
}

func newFakeUpdateStore(posts ...social.UpdatePost) *fakeUpdateStore {
	f := &fakeUpdateStore{posts: make(map[string]social.UpdatePost)}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakeUpdateStore) CreateUpdate(_ context.Context, organizerID, title, description string) (social.UpdatePost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	post := social.UpdatePost{
		ID:          fmt.Sprintf("update-%d", f.nextID),
		Title:       title,
		Description: description,
		OrganizerID: organizerID,
		Reactions:   []social.Reaction{},
		CreatedAt:   time.Now(),
	}
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeUpdateStore) UpdateByID(_ context.Context, id string) (social.UpdatePost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post, ok := f.posts[id]
	if !ok {
		return social.UpdatePost{}, social.ErrUpdateNotFound
	}
	post.Reactions = append([]social.Reaction(nil), post.Reactions...)
	return post, nil
}

func (f *fakeUpdateStore) SaveUpdate(_ context.Context, post social.UpdatePost) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSave {
		return fmt.Errorf("save update: store unavailable")
	}

	f.posts[post.ID] = post
	return nil
}

func (f *fakeUpdateStore) get(t *testing.T, id string) social.UpdatePost {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	require.True(t, ok, "post %s not stored", id)
	return post
}

// newTestClient creates a connection without a socket and registers it with the hub.
func newTestClient(h *Hub) *Client {
	c := NewClient(h, nil, "")
	h.Register(c)
	return c
}

// recvEvent pops and decodes the next queued outbound frame of the connection.
func recvEvent(t *testing.T, c *Client) Envelope {
	t.Helper()

	select {
	case frame := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		return env
	default:
		t.Fatal("expected a queued event, got none")
		return Envelope{}
	}
}

// requireNoEvent asserts that the connection has nothing queued.
func requireNoEvent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case frame := <-c.send:
		t.Fatalf("expected no queued event, got %s", frame)
	default:
	}
}

// decodePayload unmarshals an envelope payload into dst.
func decodePayload(t *testing.T, env Envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Payload, dst))
}
