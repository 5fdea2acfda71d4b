package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"potatoapi/internal/cache"
	apperrors "potatoapi/internal/errors"
)

const sessionKeyPrefix = "session:"

// TokenStoreInterface defines the interface for session storage operations.
type TokenStoreInterface interface {
	StoreSession(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error
	GetSession(ctx context.Context, tokenID string) (userID, email string, err error)
}

// TokenStore records issued tokens in Redis so they can be verified server-side.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

type sessionData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreSession stores the session for a token ID with TTL.
func (s *TokenStore) StoreSession(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	payload, err := json.Marshal(sessionData{UserID: userID, Email: email})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+tokenID, payload, ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// GetSession retrieves session data; a missing or unreadable record is ErrSessionNotFound.
func (s *TokenStore) GetSession(ctx context.Context, tokenID string) (userID, email string, err error) {
	data, _ := s.cache.Get(ctx, sessionKeyPrefix+tokenID)
	if data == nil {
		return "", "", apperrors.ErrSessionNotFound
	}

	var session sessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return "", "", fmt.Errorf("unmarshal session: %w", err)
	}
	return session.UserID, session.Email, nil
}
