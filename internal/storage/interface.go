package storage

import (
	"context"
	"io"
	"time"
)

// MediaStore defines the interface for object storage operations
type MediaStore interface {
	Upload(ctx context.Context, objectKey string, data io.Reader, size int64, contentType string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Ensure both stores implement the interface
var _ MediaStore = (*Client)(nil)
var _ MediaStore = (*MockStore)(nil)
