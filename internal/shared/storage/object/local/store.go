package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"upload-backend/internal/shared/storage/object"
)

// Store implements object.Store on the local filesystem for dev setups where
// uploaded bytes are dropped into a directory by hand or by a local emulator.
type Store struct {
	baseDir string
}

// New creates a local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: strings.TrimSpace(baseDir)}
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (*object.Object, error) {
	if s.baseDir == "" {
		return nil, object.ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean(strings.TrimLeft(key, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("local open key=%s: %w", key, object.ErrNotFound)
	}

	fullPath := filepath.Join(s.baseDir, clean)
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("local open key=%s: %w", key, object.ErrNotFound)
		}
		return nil, fmt.Errorf("local open key=%s: %w", key, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("local stat key=%s: %w", key, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("local open key=%s: %w", key, object.ErrNotFound)
	}

	return &object.Object{
		Body:          f,
		ContentType:   mime.TypeByExtension(filepath.Ext(clean)),
		ContentLength: info.Size(),
	}, nil
}

var _ object.Store = (*Store)(nil)
