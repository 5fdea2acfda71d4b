package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"potatoapi/internal/service"
)

// PhotoHandler serves photo lookups.
type PhotoHandler struct {
	svc service.PhotoService
}

// NewPhotoHandler creates a photo handler.
func NewPhotoHandler(svc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// PhotoResponse carries the URL of a single photo.
type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

// RandomPhoto godoc
// @Summary Fetch a random photo
// @Description An empty photo table answers 404 NO_PHOTOS instead of a generic 500.
// @Tags photos
// @Produce json
// @Success 200 {object} PhotoResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /photos/random [get]
func (h *PhotoHandler) RandomPhoto(c echo.Context) error {
	photo, err := h.svc.RandomPhoto(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PhotoResponse{PhotoURL: photo.URL})
}
