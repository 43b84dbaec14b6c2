/*
Package user contains core data structures related to user identity and settings.

It defines the display profile broadcast to connected clients and the per-user
settings record owned by the data store.
*/
package user

// User carries the identity and display profile of a participant.
// Only the JSON-tagged fields are ever serialized to clients.
type User struct {
	// ID is the stable, opaque identifier for the user.
	ID string `json:"id"`

	// Nickname is the display name shown to other users.
	Nickname string `json:"nickname"`

	// Avatar is the resolved URL of the user's avatar, if any.
	Avatar string `json:"avatar,omitempty"`

	// ShowOnlineStatus is the persisted visibility preference. It controls
	// whether the user appears in presence snapshots and is never sent to
	// other clients.
	ShowOnlineStatus bool `json:"-"`
}

// Settings is the per-user settings record.
type Settings struct {
	ShowOnlineStatus bool `json:"showOnlineStatus"`
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	ShowOnlineStatus *bool `json:"showOnlineStatus,omitempty"`
}
