package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService is the public interface of the avatar asset storage.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading an avatar object.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error

	// PublicURL resolves a stored object key to the URL served to clients.
	PublicURL(key string) string
}

// NewStorageService initializes and returns the concrete StorageService.
// Only S3-compatible implementations are supported.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	return newS3Client(cfg)
}
