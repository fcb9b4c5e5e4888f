package users

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrValidation = errors.New("invalid user")
)

type Repo interface {
	// Ensure inserts the user when absent and returns the stored row. An
	// existing row keeps its name.
	Ensure(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}

// DBTX is satisfied by both *sql.DB and *sql.Tx so the catalog can run an
// ensure inside its own transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
