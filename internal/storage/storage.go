// Package storage defines the interface for object storage operations.
// The MinIO implementation works with any S3-compatible provider; tests use
// an in-memory substitute.
package storage

import (
	"context"
	"io"
)

// Storage is the interface for uploading and retrieving binary objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	// Objects are publicly readable, so the URL works without further
	// authorization.
	PublicURL(key string) string
}
