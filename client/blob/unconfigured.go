package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// Unconfigured is used when no OSS endpoint is set. Uploads fail, deletes
// and listings see an empty bucket.
type Unconfigured struct{}

func (Unconfigured) PutObject(ctx context.Context, key string, r io.Reader) error {
	return ErrNotConfigured
}

func (Unconfigured) DeleteObject(ctx context.Context, key string) error {
	return nil
}

func (Unconfigured) ObjectURL(key string) string {
	return ""
}

func (Unconfigured) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return nil, nil
}
