package users

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users: make(map[string]User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Ensure(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.ID]; ok {
		return existing, nil
	}
	user.CreatedAt = r.now()
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// Name returns the stored name for userID, or "" when the user is unknown.
// The in-memory catalog uses it to emulate the listing join.
func (r *MemoryRepo) Name(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID].Name
}
