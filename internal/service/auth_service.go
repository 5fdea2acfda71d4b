package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"potatoapi/internal/auth"
	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (token string, err error)
	Session(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareAgainstDummy spends the same bcrypt work as a real check so that
// unknown usernames cannot be told apart by response time.
func compareAgainstDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("potato-dummy-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Authenticate verifies the credentials of the user whose email equals username
// and issues a signed token backed by a server-side session.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			compareAgainstDummy(password)
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	tokenID, token, err := s.jwtService.GenerateAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	if err := s.tokenStore.StoreSession(ctx, tokenID, user.ID.String(), user.Email, s.jwtService.TTL()); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Session validates a token and checks that its session is still recorded.
func (s *authService) Session(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}

	userID, email, err := s.tokenStore.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if userID != claims.UserID || email != claims.Email {
		return nil, apperrors.ErrSessionNotFound
	}
	return claims, nil
}
