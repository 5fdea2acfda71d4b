package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "potatoapi/internal/errors"
	"potatoapi/internal/model"
)

// UserChanges carries the mutable user fields. Nil pointers leave the column untouched.
type UserChanges struct {
	Username        string
	Email           string
	Bio             *string
	ProfileImageURL *string
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, changes UserChanges) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translateUserError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateUserError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateUserError(err)
	}
	return &user, nil
}

// Update locks the row, applies the changes and returns the stored user in one transaction.
func (r *userRepository) Update(ctx context.Context, id uuid.UUID, changes UserChanges) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"username": changes.Username,
			"email":    changes.Email,
		}
		user.Username = &changes.Username
		user.Email = changes.Email
		if changes.Bio != nil {
			updates["bio"] = *changes.Bio
			user.Bio = changes.Bio
		}
		if changes.ProfileImageURL != nil {
			updates["profile_image_url"] = *changes.ProfileImageURL
			user.ProfileImageURL = changes.ProfileImageURL
		}

		return tx.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, translateUserError(err)
	}
	return &user, nil
}

// Delete removes the user in a single statement; zero affected rows means it did not exist.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func translateUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrUserAlreadyExists
	default:
		return err
	}
}
