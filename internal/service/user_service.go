package service

import (
	"context"
	"errors"
	"fmt"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/repository"
)

// ErrUserNotFound is returned when the requested account does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes account lookups.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns one account by ID.
func (s *UserService) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
