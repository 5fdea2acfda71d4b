package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "potatoapi/internal/errors"
)

// bindRequest fills req from path params, query params and the body, in that
// order, then runs validation. Query binding is applied for every method so
// that clients may send parameters either way.
func bindRequest(c echo.Context, req interface{}) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid path parameters",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := binder.BindQueryParams(c, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := binder.BindBody(c, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
