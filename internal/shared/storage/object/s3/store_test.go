package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"upload-backend/internal/shared/storage/object"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "uploads/photo.png", want: "uploads/photo.png"},
		{name: "simple prefix", prefix: "root", key: "photo.png", want: "root/photo.png"},
		{name: "prefix trailing slash", prefix: "root/", key: "a/b.txt", want: "root/a/b.txt"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/a/b.txt", want: "root/a/b.txt"},
		{name: "empty key", prefix: "root", key: "", want: "root"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ApplyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("ApplyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func newTestClient(srv *httptest.Server) *s3.Client {
	return s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:   srv.Client(),
	})
}

func TestOpenStreamsObject(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	store := New(newTestClient(srv), "bucket", "/tenant/")
	obj, err := store.Open(context.Background(), "notes/a.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer obj.Body.Close()

	body, _ := io.ReadAll(obj.Body)
	if string(body) != "hello" {
		t.Fatalf("unexpected body %q", body)
	}
	if obj.ContentType != "text/plain" {
		t.Fatalf("unexpected content type %q", obj.ContentType)
	}
	if obj.ContentLength != 5 {
		t.Fatalf("expected content length 5, got %d", obj.ContentLength)
	}
	if gotPath != "/bucket/tenant/notes/a.txt" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
}

func TestOpenMapsNoSuchKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
	}))
	defer srv.Close()

	store := New(newTestClient(srv), "bucket", "")
	_, err := store.Open(context.Background(), "missing.bin")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenKeepsProviderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`))
	}))
	defer srv.Close()

	store := New(newTestClient(srv), "bucket", "")
	_, err := store.Open(context.Background(), "secret.bin")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, object.ErrNotFound) || errors.Is(err, object.ErrNotConfigured) {
		t.Fatalf("access denied must not map to a sentinel, got %v", err)
	}
}

func TestOpenWithoutBucket(t *testing.T) {
	store := New(nil, " ", "")
	if _, err := store.Open(context.Background(), "a.txt"); !errors.Is(err, object.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
