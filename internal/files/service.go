package files

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"upload-backend/internal/shared/metrics"
	"upload-backend/internal/users"
)

// Service implements the catalog operations on top of a Repo.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput carries the metadata a client reports after its upload
// finished. Empty optional strings are stored as NULL.
type CreateInput struct {
	OriginalName string
	StorageKey   string
	UserID       string
	UserName     string
	FolderID     string
	MimeType     string
	Size         *int64
}

// List returns one normalized page of the catalog.
func (s *Service) List(ctx context.Context, q ListQuery) (Page, error) {
	if s == nil || s.Repo == nil {
		return Page{}, errors.New("files service not configured")
	}
	q = q.Normalize()

	rows, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if rows == nil {
		rows = []File{}
	}
	return Page{
		Data:       rows,
		Items:      rows,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, q.PageSize),
	}, nil
}

// Create validates the input, ensures the owner exists and stores the record
// under a fresh public id.
func (s *Service) Create(ctx context.Context, in CreateInput) (File, error) {
	if s == nil || s.Repo == nil {
		return File{}, errors.New("files service not configured")
	}
	rec, owner, err := buildRecord(in)
	if err != nil {
		return File{}, err
	}

	created, err := s.Repo.Create(ctx, rec, owner)
	if err != nil {
		return File{}, err
	}
	metrics.IncFilesCreated()
	return created, nil
}

func buildRecord(in CreateInput) (File, users.User, error) {
	originalName := strings.TrimSpace(in.OriginalName)
	storageKey := strings.TrimSpace(in.StorageKey)
	userID := strings.TrimSpace(in.UserID)

	if originalName == "" {
		return File{}, users.User{}, fmt.Errorf("%w: originalName is required", ErrValidation)
	}
	if storageKey == "" {
		storageKey = originalName
	}
	if userID == "" {
		return File{}, users.User{}, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if in.Size != nil && *in.Size < 0 {
		return File{}, users.User{}, fmt.Errorf("%w: size must not be negative", ErrValidation)
	}

	owner, err := users.Normalize(users.User{ID: userID, Name: in.UserName})
	if err != nil {
		return File{}, users.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	rec := File{
		ID:           uuid.NewString(),
		OriginalName: originalName,
		StorageKey:   storageKey,
		MimeType:     optional(in.MimeType),
		Size:         in.Size,
		UserID:       userID,
		FolderID:     optional(in.FolderID),
	}
	return rec, owner, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
