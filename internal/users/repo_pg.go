package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB DBTX
}

func (r *PGRepo) Ensure(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, name, created_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, query, user.ID, user.Name); err != nil {
		return User{}, fmt.Errorf("ensure user id=%s: %w", user.ID, err)
	}
	return r.GetByID(ctx, user.ID)
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, name, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("get user id=%s: %w", userID, err)
	}
	return user, nil
}
