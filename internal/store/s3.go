package store

import (
	"context"
	"errors"

	"linkpage/internal/storage"
)

// S3Backend stores the document as a single JSON object in a bucket.
type S3Backend struct {
	client *storage.Client
	key    string
}

// NewS3Backend returns an S3Backend writing to object key, or
// "<DefaultKey>.json" when key is empty.
func NewS3Backend(client *storage.Client, key string) *S3Backend {
	if key == "" {
		key = DefaultKey + ".json"
	}
	return &S3Backend{client: client, key: key}
}

func (b *S3Backend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Download(ctx, b.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *S3Backend) Save(ctx context.Context, data []byte) error {
	return b.client.Upload(ctx, b.key, "application/json", data)
}

func (b *S3Backend) Name() string { return "s3" }
