package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"potatoapi/internal/model"
)

// PhotoRepository defines photo persistence operations.
type PhotoRepository interface {
	Count(ctx context.Context) (int64, error)
	FindAtOffset(ctx context.Context, offset int) (*model.Photo, error)
	CreateIfAbsent(ctx context.Context, url string) (bool, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Count returns the number of stored photos.
func (r *photoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Photo{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAtOffset returns the photo at the given position in primary key order,
// or nil when the offset is past the last row.
func (r *photoRepository) FindAtOffset(ctx context.Context, offset int) (*model.Photo, error) {
	var photo model.Photo
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Take(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// CreateIfAbsent inserts a photo unless its URL is already stored.
// It reports whether a new row was written.
func (r *photoRepository) CreateIfAbsent(ctx context.Context, url string) (bool, error) {
	photo := &model.Photo{URL: url}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "url"}}, DoNothing: true}).
		Create(photo)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
