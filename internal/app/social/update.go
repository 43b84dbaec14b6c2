package social

import (
	"errors"
	"time"
)

// ErrUpdateNotFound is returned by update stores when the requested id does not resolve.
var ErrUpdateNotFound = errors.New("update not found")

// ReactionType is the category of a reaction on an update post.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid reports whether t is a recognized reaction category.
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction records one user's reaction on an update post.
// At most one Reaction exists per (update, user) pair.
type Reaction struct {
	UserID string       `json:"user"`
	Type   ReactionType `json:"type"`
}

// UpdatePost is a shared post-like record with aggregate reaction counts.
// Likes and Dislikes are a cached projection of the Reactions list and are
// recomputed on every toggle.
type UpdatePost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	OrganizerID string     `json:"organizer"`
	Likes       int        `json:"likes"`
	Dislikes    int        `json:"dislikes"`
	Reactions   []Reaction `json:"reactions"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToggleResult describes the effect a reaction toggle had on an update post.
type ToggleResult int

const (
	// ReactionAdded means the user had no prior reaction and one was recorded.
	ReactionAdded ToggleResult = iota

	// ReactionRemoved means the user repeated their current reaction and it was removed.
	ReactionRemoved

	// ReactionSwitched means the user's reaction changed category.
	ReactionSwitched
)

// ToggleReaction applies a single user's reaction toggle to the post:
//
//	none    + like    -> like    (likes +1)
//	none    + dislike -> dislike (dislikes +1)
//	like    + like    -> none    (likes -1)
//	dislike + dislike -> none    (dislikes -1)
//	like    + dislike -> dislike (likes -1, dislikes +1)
//	dislike + like    -> like    (likes +1, dislikes -1)
//
// Counts are clamped at zero to guard against drift in persisted data.
func (p *UpdatePost) ToggleReaction(userID string, requested ReactionType) ToggleResult {
	for i := range p.Reactions {
		if p.Reactions[i].UserID != userID {
			continue
		}

		current := p.Reactions[i].Type

		if current == requested {
			p.Reactions = append(p.Reactions[:i], p.Reactions[i+1:]...)
			p.decrement(current)
			return ReactionRemoved
		}

		p.Reactions[i].Type = requested
		p.decrement(current)
		p.increment(requested)
		return ReactionSwitched
	}

	p.Reactions = append(p.Reactions, Reaction{UserID: userID, Type: requested})
	p.increment(requested)
	return ReactionAdded
}

// ReactionBy returns the user's current reaction on the post, if any.
func (p *UpdatePost) ReactionBy(userID string) (Reaction, bool) {
	for _, r := range p.Reactions {
		if r.UserID == userID {
			return r, true
		}
	}
	return Reaction{}, false
}

func (p *UpdatePost) increment(t ReactionType) {
	switch t {
	case ReactionLike:
		p.Likes++
	case ReactionDislike:
		p.Dislikes++
	}
}

func (p *UpdatePost) decrement(t ReactionType) {
	switch t {
	case ReactionLike:
		if p.Likes > 0 {
			p.Likes--
		}
	case ReactionDislike:
		if p.Dislikes > 0 {
			p.Dislikes--
		}
	}
}
