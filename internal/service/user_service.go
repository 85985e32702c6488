package service

import (
	"context"
	"fmt"
	"time"

	"govsite/internal/auth"
	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes staff account operations.
type UserService interface {
	CreateUser(ctx context.Context, in model.UserInput) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache readCache
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, c *cache.Client) UserService {
	return &userService{repo: repo, cache: newReadCache(c, userCacheTTL, "user")}
}

// CreateUser hashes the password and stores the user. Role defaults to "user".
func (s *userService) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Role:         role,
		FullName:     in.FullName,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, domainError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return cached(ctx, s.cache, s.cache.key(id), func() (*model.User, error) {
		user, err := s.repo.FindByID(ctx, id)
		return user, domainError(err, apperrors.ErrUserNotFound)
	})
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	return user, domainError(err, apperrors.ErrUserNotFound)
}
