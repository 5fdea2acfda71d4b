package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/model"
	"potatoapi/internal/repository"
)

const bcryptCost = 10

// UserService exposes account operations.
type UserService interface {
	CreateUser(ctx context.Context, email, password string, username *string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateUser(ctx context.Context, id string, changes repository.UserChanges) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService on top of a user repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser hashes the password and stores a new user.
func (s *userService) CreateUser(ctx context.Context, email, password string, username *string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if username != nil && *username != "" {
		user.Username = username
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user. Unknown or malformed ids yield ErrUserNotFound.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// UpdateUser persists the supplied fields and returns the stored user.
func (s *userService) UpdateUser(ctx context.Context, id string, changes repository.UserChanges) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	user, err := s.repo.Update(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
