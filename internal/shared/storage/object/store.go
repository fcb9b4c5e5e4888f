package object

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when no object exists under the requested key.
	ErrNotFound = errors.New("object not found")
	// ErrNotConfigured is returned when the store has no bucket or root to read from.
	ErrNotConfigured = errors.New("object store not configured")
)

// Object is an open handle to a stored object. Callers must close Body.
// ContentLength is -1 when the backend does not report a size.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Store opens stored objects by key for streaming reads.
type Store interface {
	Open(ctx context.Context, key string) (*Object, error)
}
