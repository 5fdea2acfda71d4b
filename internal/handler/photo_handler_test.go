package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/model"
)

func TestPhotoHandler_RandomPhoto(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockPhotoService)
		svc.On("RandomPhoto", mock.Anything).Return(&model.Photo{URL: "https://cdn.example.com/1.jpg"}, nil)
		h := NewPhotoHandler(svc)

		c, rec := newContext(newEcho(), http.MethodGet, "/photos/random", nil)
		require.NoError(t, h.RandomPhoto(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"photo_url":"https://cdn.example.com/1.jpg"}`, rec.Body.String())
	})

	t.Run("empty table", func(t *testing.T) {
		svc := new(MockPhotoService)
		svc.On("RandomPhoto", mock.Anything).Return(nil, apperrors.ErrNoPhotos)
		h := NewPhotoHandler(svc)

		c, _ := newContext(newEcho(), http.MethodGet, "/photos/random", nil)
		assert.ErrorIs(t, h.RandomPhoto(c), apperrors.ErrNoPhotos)
	})
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "store down", pingErr: errors.New("sql: database is closed"), wantStatus: http.StatusServiceUnavailable, wantBody: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(func(ctx context.Context) error { return tt.pingErr })

			c, rec := newContext(newEcho(), http.MethodGet, "/healthz", nil)
			require.NoError(t, h.Health(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
