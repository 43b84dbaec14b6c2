/*
Package randx provides generators for unique identifiers used by persisted records.
*/
package randx

import (
	"github.com/google/uuid"
)

// MessageID generates a UUID v4 string identifying a direct message.
func MessageID() string {
	return uuid.New().String()
}

// UpdateID generates a UUID v4 string identifying an update post.
func UpdateID() string {
	return uuid.New().String()
}

// AssetID generates a UUID v4 string used in object storage keys.
func AssetID() string {
	return uuid.New().String()
}
