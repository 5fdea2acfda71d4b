package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account holder of the API.
type User struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string    `json:"-" gorm:"column:password;size:255;not null"` // bcrypt hash, never exposed
	Username        *string   `json:"username,omitempty" gorm:"size:255"`
	Bio             *string   `json:"bio,omitempty" gorm:"type:text"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" gorm:"size:1024"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
