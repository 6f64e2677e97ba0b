package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaStorage defines the interface for object storage of exercise
// demo media (images, short videos). Files are uploaded and fetched
// directly by clients via presigned URLs; only the object key is
// stored in the database.
type MediaStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a
	// PUT request to upload an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows
	// a GET request to fetch an object directly from the provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
