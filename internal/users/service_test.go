package users

import (
	"context"
	"errors"
	"testing"
)

func TestServiceEnsureDefaultsName(t *testing.T) {
	t.Parallel()
	svc := NewService(NewMemoryRepo())

	user, err := svc.Ensure(context.Background(), User{ID: "  demo-42 "})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if user.ID != "demo-42" || user.Name != "demo-42" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}
}

func TestServiceEnsureKeepsExistingName(t *testing.T) {
	t.Parallel()
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.Ensure(ctx, User{ID: "u1", Name: "Grace"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	second, err := svc.Ensure(ctx, User{ID: "u1", Name: "Someone Else"})
	if err != nil {
		t.Fatalf("Ensure again: %v", err)
	}
	if second.Name != "Grace" || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected first write to win, got %+v", second)
	}
}

func TestServiceValidation(t *testing.T) {
	t.Parallel()
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Ensure(context.Background(), User{ID: " "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
