package social_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pulsehub/internal/app/social"
)

func TestUpdatePost_ToggleReaction_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		current      *social.ReactionType
		requested    social.ReactionType
		wantResult   social.ToggleResult
		wantLikes    int
		wantDislikes int
		wantReaction bool
	}{
		{
			name:         "none plus like records a like",
			current:      nil,
			requested:    social.ReactionLike,
			wantResult:   social.ReactionAdded,
			wantLikes:    1,
			wantDislikes: 0,
			wantReaction: true,
		},
		{
			name:         "none plus dislike records a dislike",
			current:      nil,
			requested:    social.ReactionDislike,
			wantResult:   social.ReactionAdded,
			wantLikes:    0,
			wantDislikes: 1,
			wantReaction: true,
		},
		{
			name:         "like plus like removes the reaction",
			current:      reaction(social.ReactionLike),
			requested:    social.ReactionLike,
			wantResult:   social.ReactionRemoved,
			wantLikes:    0,
			wantDislikes: 0,
			wantReaction: false,
		},
		{
			name:         "dislike plus dislike removes the reaction",
			current:      reaction(social.ReactionDislike),
			requested:    social.ReactionDislike,
			wantResult:   social.ReactionRemoved,
			wantLikes:    0,
			wantDislikes: 0,
			wantReaction: false,
		},
		{
			name:         "like plus dislike switches the reaction",
			current:      reaction(social.ReactionLike),
			requested:    social.ReactionDislike,
			wantResult:   social.ReactionSwitched,
			wantLikes:    0,
			wantDislikes: 1,
			wantReaction: true,
		},
		{
			name:         "dislike plus like switches the reaction",
			current:      reaction(social.ReactionDislike),
			requested:    social.ReactionLike,
			wantResult:   social.ReactionSwitched,
			wantLikes:    1,
			wantDislikes: 0,
			wantReaction: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			post := social.UpdatePost{ID: "u1", Title: "launch"}
			if tc.current != nil {
				post.ToggleReaction("alice", *tc.current)
			}

			result := post.ToggleReaction("alice", tc.requested)

			require.Equal(t, tc.wantResult, result)
			require.Equal(t, tc.wantLikes, post.Likes)
			require.Equal(t, tc.wantDislikes, post.Dislikes)

			got, ok := post.ReactionBy("alice")
			require.Equal(t, tc.wantReaction, ok)
			if ok {
				require.Equal(t, tc.requested, got.Type)
			}
		})
	}
}

func TestUpdatePost_ToggleReaction_RepeatedToggleCycles(t *testing.T) {
	t.Parallel()

	post := social.UpdatePost{ID: "u1"}

	require.Equal(t, social.ReactionAdded, post.ToggleReaction("alice", social.ReactionLike))
	require.Equal(t, social.ReactionRemoved, post.ToggleReaction("alice", social.ReactionLike))
	require.Equal(t, social.ReactionAdded, post.ToggleReaction("alice", social.ReactionLike))

	require.Equal(t, 1, post.Likes)
	require.Equal(t, 0, post.Dislikes)
	require.Len(t, post.Reactions, 1)
}

func TestUpdatePost_ToggleReaction_TwoUsers(t *testing.T) {
	t.Parallel()

	post := social.UpdatePost{ID: "u1"}

	post.ToggleReaction("alice", social.ReactionLike)
	post.ToggleReaction("bob", social.ReactionDislike)

	require.Equal(t, 1, post.Likes)
	require.Equal(t, 1, post.Dislikes)
	require.Len(t, post.Reactions, 2)
}

func TestUpdatePost_ToggleReaction_SwitchKeepsTotalCount(t *testing.T) {
	t.Parallel()

	post := social.UpdatePost{ID: "u1"}
	post.ToggleReaction("alice", social.ReactionLike)
	post.ToggleReaction("bob", social.ReactionLike)

	post.ToggleReaction("alice", social.ReactionDislike)

	require.Equal(t, 1, post.Likes)
	require.Equal(t, 1, post.Dislikes)
	require.Len(t, post.Reactions, 2)
}

func TestUpdatePost_ToggleReaction_ClampsDriftedCounts(t *testing.T) {
	t.Parallel()

	// A post loaded with drifted counts: a recorded reaction but zeroed
	// aggregates. Removing the reaction must not push the count below zero.
	post := social.UpdatePost{
		ID:        "u1",
		Reactions: []social.Reaction{{UserID: "alice", Type: social.ReactionLike}},
	}

	result := post.ToggleReaction("alice", social.ReactionLike)

	require.Equal(t, social.ReactionRemoved, result)
	require.Equal(t, 0, post.Likes)
	require.Equal(t, 0, post.Dislikes)
	require.Empty(t, post.Reactions)
}

func TestReactionType_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, social.ReactionLike.Valid())
	require.True(t, social.ReactionDislike.Valid())
	require.False(t, social.ReactionType("love").Valid())
	require.False(t, social.ReactionType("").Valid())
}

func reaction(t social.ReactionType) *social.ReactionType {
	return &t
}
