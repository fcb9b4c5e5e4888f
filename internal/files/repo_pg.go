package files

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"upload-backend/internal/users"
)

// PGRepo implements Repo on Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create runs the owner ensure and the file insert in one transaction so a
// failed insert never leaves a stray user row behind.
func (r *PGRepo) Create(ctx context.Context, rec File, owner users.User) (File, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return File{}, fmt.Errorf("begin create file id=%s: %w", rec.ID, err)
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := (&users.PGRepo{DB: tx}).Ensure(ctx, owner)
	if err != nil {
		return File{}, err
	}

	const query = `
INSERT INTO files (id, original_name, storage_key, mime_type, size_bytes, user_id, folder_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING created_at`
	err = tx.QueryRowContext(ctx, query,
		rec.ID,
		rec.OriginalName,
		rec.StorageKey,
		nullable(rec.MimeType),
		nullable(rec.Size),
		rec.UserID,
		nullable(rec.FolderID),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return File{}, fmt.Errorf("insert file id=%s: %w", rec.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return File{}, fmt.Errorf("commit file id=%s: %w", rec.ID, err)
	}
	rec.UserName = stored.Name
	return rec, nil
}

// List runs the page query and the count query concurrently. The two
// statements do not share a snapshot, so total may drift from the page under
// concurrent inserts.
func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]File, int, error) {
	where, args := buildListWhere(q)

	var (
		rows  []File
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := r.listPage(gctx, where, args, q)
		if err != nil {
			return err
		}
		rows = page
		return nil
	})
	g.Go(func() error {
		countQuery := "SELECT COUNT(*) FROM files f" + where
		if err := r.DB.QueryRowContext(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("count files: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *PGRepo) listPage(ctx context.Context, where string, whereArgs []any, q ListQuery) ([]File, error) {
	args := append(append([]any{}, whereArgs...), q.PageSize, q.Offset())
	query := fmt.Sprintf(`
SELECT f.id, f.original_name, f.storage_key, f.mime_type, f.size_bytes, f.user_id, COALESCE(u.name, ''), f.folder_id, f.created_at
FROM files f
LEFT JOIN users u ON u.id = f.user_id%s
ORDER BY f.created_at DESC
LIMIT $%d OFFSET $%d`, where, len(whereArgs)+1, len(whereArgs)+2)

	rs, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rs.Close()

	out := make([]File, 0, q.PageSize)
	for rs.Next() {
		var (
			f        File
			mimeType sql.NullString
			size     sql.NullInt64
			folderID sql.NullString
		)
		if err := rs.Scan(
			&f.ID,
			&f.OriginalName,
			&f.StorageKey,
			&mimeType,
			&size,
			&f.UserID,
			&f.UserName,
			&folderID,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		if mimeType.Valid {
			f.MimeType = &mimeType.String
		}
		if size.Valid {
			f.Size = &size.Int64
		}
		if folderID.Valid {
			f.FolderID = &folderID.String
		}
		out = append(out, f)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return out, nil
}

// buildListWhere renders the AND-ed filter with positional placeholders.
// The returned clause is empty when no filter is set.
func buildListWhere(q ListQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		clauses = append(clauses, fmt.Sprintf(`f.original_name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if q.UserID != "" {
		args = append(args, q.UserID)
		clauses = append(clauses, fmt.Sprintf("f.user_id = $%d", len(args)))
	}
	if q.FolderID != "" {
		args = append(args, q.FolderID)
		clauses = append(clauses, fmt.Sprintf("f.folder_id = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

var _ Repo = (*PGRepo)(nil)
