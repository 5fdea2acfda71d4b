package model

import (
	"time"

	"github.com/google/uuid"
)

// APIKey grants third-party access on behalf of its owning user.
// Keys are provisioned out-of-band; the API only reads them.
type APIKey struct {
	Key       string    `json:"key" gorm:"primaryKey;size:255"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (APIKey) TableName() string {
	return "api_keys"
}
