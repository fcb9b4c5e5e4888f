package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "DATABASE_URL", "STORAGE_BUCKET_NAME", "S3_BUCKET", "OBJECT_STORE", "PRESIGN_EXPIRES", "PRESIGN_ACL", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected object store s3, got %q", cfg.ObjectStoreType)
	}
	if cfg.PresignExpires != 600*time.Second {
		t.Fatalf("expected presign expiry 600s, got %s", cfg.PresignExpires)
	}
	if cfg.PresignACL != "public-read" {
		t.Fatalf("expected public-read acl, got %q", cfg.PresignACL)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard origin, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.StorageBucket != "" {
		t.Fatalf("expected empty bucket, got %q", cfg.StorageBucket)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("STORAGE_BUCKET_NAME", "")
	t.Setenv("S3_BUCKET", "fallback-bucket")
	t.Setenv("OBJECT_STORE", "LOCAL")
	t.Setenv("PRESIGN_EXPIRES", "5m")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("S3_FORCE_PATH_STYLE", "true")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.StorageBucket != "fallback-bucket" {
		t.Fatalf("expected S3_BUCKET fallback, got %q", cfg.StorageBucket)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.PresignExpires != 5*time.Minute {
		t.Fatalf("expected 5m, got %s", cfg.PresignExpires)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if !cfg.S3ForcePathStyle {
		t.Fatalf("expected path style")
	}
}

func TestIsDevLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want bool
	}{
		{env: "dev", want: true},
		{env: " Local ", want: true},
		{env: "production", want: false},
		{env: "staging", want: false},
	}
	for _, tt := range tests {
		if got := IsDevLike(tt.env); got != tt.want {
			t.Fatalf("IsDevLike(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}
