package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/model"
	"potatoapi/internal/repository"
)

// APIKeyService validates and provisions third-party API keys.
type APIKeyService interface {
	ValidateAPIKey(ctx context.Context, key string) (userID string, err error)
	IssueAPIKey(ctx context.Context, email string) (string, error)
}

type apiKeyService struct {
	keys  repository.APIKeyRepository
	users repository.UserRepository
}

// NewAPIKeyService creates a new API key service.
func NewAPIKeyService(keys repository.APIKeyRepository, users repository.UserRepository) APIKeyService {
	return &apiKeyService{keys: keys, users: users}
}

// ValidateAPIKey returns the owning user id, or ErrAPIKeyNotFound.
func (s *apiKeyService) ValidateAPIKey(ctx context.Context, key string) (string, error) {
	apiKey, err := s.keys.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyNotFound) {
			return "", err
		}
		return "", fmt.Errorf("find api key: %w", err)
	}
	// a key whose owner is gone grants nothing
	if apiKey.User.ID == uuid.Nil {
		return "", apperrors.ErrAPIKeyNotFound
	}
	return apiKey.UserID.String(), nil
}

// IssueAPIKey creates a random key for the user registered under email.
func (s *apiKeyService) IssueAPIKey(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	key := "pk_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	if err := s.keys.Create(ctx, &model.APIKey{Key: key, UserID: user.ID}); err != nil {
		return "", fmt.Errorf("create api key: %w", err)
	}
	return key, nil
}
