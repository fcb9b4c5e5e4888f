package files

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"upload-backend/internal/users"
)

// MemoryRepo keeps the catalog in process for dev runs and tests. It shares
// its user table with the users service.
type MemoryRepo struct {
	mu    sync.RWMutex
	files []File
	users *users.MemoryRepo
	now   func() time.Time
}

func NewMemoryRepo(userRepo *users.MemoryRepo) *MemoryRepo {
	if userRepo == nil {
		userRepo = users.NewMemoryRepo()
	}
	return &MemoryRepo{
		users: userRepo,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Create(ctx context.Context, rec File, owner users.User) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.users.Ensure(ctx, owner)
	if err != nil {
		return File{}, err
	}
	rec.UserName = stored.Name
	rec.CreatedAt = r.now()
	r.files = append(r.files, rec)
	return rec, nil
}

func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]File, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := make([]File, 0, len(r.files))
	for i := len(r.files) - 1; i >= 0; i-- {
		if matches(r.files[i], q) {
			matched = append(matched, r.files[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	for i := range matched {
		matched[i].UserName = r.users.Name(matched[i].UserID)
	}

	total := len(matched)
	offset := q.Offset()
	if offset >= total {
		return []File{}, total, nil
	}
	end := offset + q.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// Len reports the number of stored records.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}

func matches(f File, q ListQuery) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(f.OriginalName), strings.ToLower(q.Search)) {
		return false
	}
	if q.UserID != "" && f.UserID != q.UserID {
		return false
	}
	if q.FolderID != "" && (f.FolderID == nil || *f.FolderID != q.FolderID) {
		return false
	}
	return true
}

var _ Repo = (*MemoryRepo)(nil)
