package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/model"
)

// APIKeyRepository defines API key persistence operations.
type APIKeyRepository interface {
	Create(ctx context.Context, key *model.APIKey) error
	FindByKey(ctx context.Context, key string) (*model.APIKey, error)
}

type apiKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository creates a new API key repository.
func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

// Create stores a new API key.
func (r *apiKeyRepository) Create(ctx context.Context, key *model.APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

// FindByKey finds an API key together with its owner.
func (r *apiKeyRepository) FindByKey(ctx context.Context, key string) (*model.APIKey, error) {
	var apiKey model.APIKey
	err := r.db.WithContext(ctx).Preload("User").
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		First(&apiKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAPIKeyNotFound
		}
		return nil, err
	}
	return &apiKey, nil
}
