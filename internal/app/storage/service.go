/*
Package storage provides object storage for user avatars.

The public Service interface hides the concrete backend; the only current
implementation targets S3-compatible endpoints.
*/
package storage

import (
	"context"
	"io"
	"time"
)

// ServiceConfig holds the settings required to reach the storage backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service is the public interface of the avatar store.
type Service interface {
	// Upload streams an object body to the given key.
	Upload(ctx context.Context, key string, mimeType string, body io.Reader) error

	// PresignDownload generates a time-limited download URL for a key.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}

// NewService initializes the storage backend from configuration.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Client(cfg)
}
