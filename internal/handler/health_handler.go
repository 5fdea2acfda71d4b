package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler creates a health handler around ping.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {string} string "unavailable"
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.ping(c.Request().Context()); err != nil {
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
