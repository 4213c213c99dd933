package port

import (
	"context"
	"io"
)

// ObjectStorage abstracts the archive for uploaded originals.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
