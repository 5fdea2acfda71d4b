package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"potatoapi/internal/auth"
	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/service"
)

// ContextKeyClaims is where the session guard stores validated claims.
const ContextKeyClaims = "claims"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	apiKeyService service.APIKeyService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, apiKeyService service.APIKeyService) *AuthHandler {
	return &AuthHandler{authService: authService, apiKeyService: apiKeyService}
}

// LoginRequest represents a credential check. Username is the account email.
type LoginRequest struct {
	Username string `query:"username" json:"username" form:"username" validate:"required"`
	Password string `query:"password" json:"password" form:"password" validate:"required"`
}

// AuthenticationResponse represents the outcome of a login attempt.
type AuthenticationResponse struct {
	Success      bool    `json:"success"`
	OAuthToken   *string `json:"oauth_token"`
	ErrorMessage *string `json:"error_message"`
}

// ValidateAPIKeyRequest carries the key to check.
type ValidateAPIKeyRequest struct {
	APIKey string `query:"api_key" json:"api_key" form:"api_key" validate:"required"`
}

// ValidateAPIKeyResponse reports whether a key is registered and to whom.
type ValidateAPIKeyResponse struct {
	IsValid bool    `json:"is_valid"`
	UserID  *string `json:"user_id"`
	Message string  `json:"message"`
}

// SessionResponse describes the session behind a bearer token.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

const (
	msgAuthFailed     = "Authentication failed. Wrong username or password."
	msgAPIKeyValid    = "API key is valid."
	msgAPIKeyNotValid = "Invalid API key."
)

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Produce json
// @Param username query string true "Account email"
// @Param password query string true "Password"
// @Success 200 {object} AuthenticationResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			msg := msgAuthFailed
			return c.JSON(http.StatusOK, AuthenticationResponse{Success: false, ErrorMessage: &msg})
		}
		return err
	}
	return c.JSON(http.StatusOK, AuthenticationResponse{Success: true, OAuthToken: &token})
}

// ValidateAPIKey godoc
// @Summary Validate an API key
// @Tags auth
// @Produce json
// @Param api_key query string true "API key"
// @Success 200 {object} ValidateAPIKeyResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/validate [get]
func (h *AuthHandler) ValidateAPIKey(c echo.Context) error {
	var req ValidateAPIKeyRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	userID, err := h.apiKeyService.ValidateAPIKey(c.Request().Context(), req.APIKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyNotFound) {
			return c.JSON(http.StatusOK, ValidateAPIKeyResponse{IsValid: false, Message: msgAPIKeyNotValid})
		}
		return err
	}
	return c.JSON(http.StatusOK, ValidateAPIKeyResponse{IsValid: true, UserID: &userID, Message: msgAPIKeyValid})
}

// ParseToken resolves a bearer token into session claims. It is plugged into
// the JWT middleware so only tokens with a live session are accepted.
func (h *AuthHandler) ParseToken(c echo.Context, token string) (interface{}, error) {
	return h.authService.Session(c.Request().Context(), token)
}

// Session godoc
// @Summary Describe the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: apperrors.ErrSessionNotFound.Error(),
			Code:  "SESSION_NOT_FOUND",
		})
	}

	resp := SessionResponse{UserID: claims.UserID, Email: claims.Email}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return c.JSON(http.StatusOK, resp)
}
