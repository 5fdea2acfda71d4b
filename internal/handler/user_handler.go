package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/repository"
	"potatoapi/internal/service"
)

// UserHandler serves the account endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest carries the fields of a new account.
type CreateUserRequest struct {
	Email    string `query:"email" json:"email" form:"email" validate:"required"`
	Password string `query:"password" json:"password" form:"password" validate:"required"`
	Username string `query:"username" json:"username" form:"username"`
}

// CreateUserResponse is returned once the account is stored.
type CreateUserResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// DeleteUserRequest identifies the account to delete.
type DeleteUserRequest struct {
	ID string `param:"id"`
}

// DeleteUserResponse reports the result of the deletion.
type DeleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateUserRequest carries the new account details.
type UpdateUserRequest struct {
	ID              string `param:"id"`
	Username        string `query:"username" json:"username" form:"username" validate:"required"`
	Email           string `query:"email" json:"email" form:"email" validate:"required"`
	Bio             string `query:"bio" json:"bio" form:"bio"`
	ProfileImageURL string `query:"profile_image_url" json:"profile_image_url" form:"profile_image_url"`
}

// UpdatedUserDetails echoes the stored account after an update.
type UpdatedUserDetails struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UpdateUserResponse reports the result of the update.
type UpdateUserResponse struct {
	Success            bool                `json:"success"`
	Message            string              `json:"message"`
	UpdatedUserDetails *UpdatedUserDetails `json:"updated_user_details"`
}

const (
	msgUserCreated  = "User created successfully."
	msgUserDeleted  = "User deleted successfully."
	msgUserUpdated  = "User updated successfully."
	msgUserNotFound = "User not found."
)

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param email query string true "Email address, must be unique"
// @Param password query string true "Plaintext password, stored as a bcrypt hash"
// @Param username query string false "Optional username"
// @Success 200 {object} CreateUserResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user, err := h.svc.CreateUser(c.Request().Context(), req.Email, req.Password, optional(req.Username))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CreateUserResponse{
		UserID:  user.ID.String(),
		Message: msgUserCreated,
	})
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} DeleteUserResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var req DeleteUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.svc.DeleteUser(c.Request().Context(), req.ID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusOK, DeleteUserResponse{Success: false, Message: msgUserNotFound})
		}
		return err
	}
	return c.JSON(http.StatusOK, DeleteUserResponse{Success: true, Message: msgUserDeleted})
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param username query string true "New username"
// @Param email query string true "New email address"
// @Param bio query string false "Short bio"
// @Param profile_image_url query string false "Profile image URL"
// @Success 200 {object} UpdateUserResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), req.ID, repository.UserChanges{
		Username:        req.Username,
		Email:           req.Email,
		Bio:             optional(req.Bio),
		ProfileImageURL: optional(req.ProfileImageURL),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusOK, UpdateUserResponse{Success: false, Message: msgUserNotFound})
		}
		return err
	}

	details := &UpdatedUserDetails{
		Email:           user.Email,
		Bio:             user.Bio,
		ProfileImageURL: user.ProfileImageURL,
	}
	if user.Username != nil {
		details.Username = *user.Username
	}
	return c.JSON(http.StatusOK, UpdateUserResponse{
		Success:            true,
		Message:            msgUserUpdated,
		UpdatedUserDetails: details,
	})
}
