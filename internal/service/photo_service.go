package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/model"
	"potatoapi/internal/repository"
)

// PhotoService serves stored photos.
type PhotoService interface {
	RandomPhoto(ctx context.Context) (*model.Photo, error)
	ImportPhotos(ctx context.Context, urls []string) (created int, err error)
}

type photoService struct {
	repo repository.PhotoRepository
	intN func(n int) int
}

// NewPhotoService creates a photo service drawing offsets from math/rand.
func NewPhotoService(repo repository.PhotoRepository) PhotoService {
	return &photoService{repo: repo, intN: rand.IntN}
}

// RandomPhoto picks a photo uniformly: count the rows, draw an offset in
// [0, count) and fetch the row at that offset in primary key order.
func (s *photoService) RandomPhoto(ctx context.Context) (*model.Photo, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count photos: %w", err)
	}
	if count == 0 {
		return nil, apperrors.ErrNoPhotos
	}

	offset := s.intN(int(count))
	photo, err := s.repo.FindAtOffset(ctx, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch photo at offset %d: %w", offset, err)
	}
	if photo == nil {
		return nil, fmt.Errorf("offset %d of %d: %w", offset, count, apperrors.ErrPhotoFetchFailed)
	}
	return photo, nil
}

// ImportPhotos stores the given URLs, skipping blanks and ones already present.
func (s *photoService) ImportPhotos(ctx context.Context, urls []string) (int, error) {
	created := 0
	for _, url := range urls {
		if url == "" {
			continue
		}
		ok, err := s.repo.CreateIfAbsent(ctx, url)
		if err != nil {
			return created, fmt.Errorf("import photo %s: %w", url, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
