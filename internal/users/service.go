package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Ensure creates the user when it does not exist yet. The name defaults to
// the id, matching the demo identity the browser mints for itself.
func (s *Service) Ensure(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	user, err := Normalize(user)
	if err != nil {
		return User{}, err
	}
	return s.Repo.Ensure(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, fmt.Errorf("%w: id is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, userID)
}

// Normalize trims the user fields and fills the default name.
func Normalize(user User) (User, error) {
	user.ID = strings.TrimSpace(user.ID)
	user.Name = strings.TrimSpace(user.Name)
	if user.ID == "" {
		return User{}, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if user.Name == "" {
		user.Name = user.ID
	}
	return user, nil
}
