package driven

import (
	"context"
	"errors"
	"io"
)

// ErrAttachmentNotFound indicates no staged bytes exist under the requested key.
var ErrAttachmentNotFound = errors.New("attachment not found")

// AttachmentStore defines the driven port for staging image bytes between
// upload and submission.
type AttachmentStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
