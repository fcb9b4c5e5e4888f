package files

import (
	"context"

	"upload-backend/internal/users"
)

// Repo persists catalog records.
type Repo interface {
	// Create ensures the owner exists and inserts rec atomically, returning
	// the stored record with its server-assigned CreatedAt and owner name.
	Create(ctx context.Context, rec File, owner users.User) (File, error)
	// List returns one page of matching rows, newest first, plus the total
	// number of matching rows.
	List(ctx context.Context, q ListQuery) ([]File, int, error)
}
