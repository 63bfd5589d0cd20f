package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

// Options holds the connection settings for the MinIO-backed store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// Client talks to a single MinIO bucket.
type Client struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

func NewClient(opts Options, log *logger.Logger) (*Client, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	c := &Client{
		client: client,
		bucket: opts.Bucket,
		log:    log,
	}

	if err := c.ensureBucket(context.Background(), opts.Region); err != nil {
		return nil, err
	}

	return c, nil
}

// ensureBucket creates the bucket if it does not exist yet
func (c *Client) ensureBucket(ctx context.Context, region string) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}

	if !exists {
		if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{
			Region: region,
		}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
		}
		c.log.Info("Created storage bucket", "bucket", c.bucket)
	}

	return nil
}

// Upload stores an object under the given key
func (c *Client) Upload(ctx context.Context, objectKey string, data io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucket, objectKey, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	return nil
}

// ListKeys returns the keys of all objects under the given prefix
func (c *Client) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	objectCh := c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var keys []string
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, object.Err)
		}
		keys = append(keys, object.Key)
	}

	return keys, nil
}

// PresignedURL generates a short-lived download URL for an object
func (c *Client) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	// Reject path traversal in object keys
	if strings.Contains(objectKey, "..") {
		return "", fmt.Errorf("invalid object key: %s", objectKey)
	}

	presignedURL, err := c.client.PresignedGetObject(ctx, c.bucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", objectKey, err)
	}

	return presignedURL.String(), nil
}
