package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"upload-backend/internal/shared/storage/object"
)

func TestOpenReadsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "readme.json"), []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	obj, err := New(dir).Open(context.Background(), "/docs/readme.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer obj.Body.Close()

	body, _ := io.ReadAll(obj.Body)
	if string(body) != `{"a":1}` {
		t.Fatalf("unexpected body %q", body)
	}
	if obj.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", obj.ContentType)
	}
	if obj.ContentLength != 7 {
		t.Fatalf("expected length 7, got %d", obj.ContentLength)
	}
}

func TestOpenNotFound(t *testing.T) {
	t.Parallel()
	store := New(t.TempDir())

	for _, key := range []string{"missing.txt", "../escape.txt", ""} {
		if _, err := store.Open(context.Background(), key); !errors.Is(err, object.ErrNotFound) {
			t.Fatalf("key %q: expected ErrNotFound, got %v", key, err)
		}
	}
}

func TestOpenWithoutBaseDir(t *testing.T) {
	t.Parallel()
	if _, err := New("").Open(context.Background(), "a.txt"); !errors.Is(err, object.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
