package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is a stored potato picture, addressed by its public URL.
type Photo struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	URL       string    `json:"url" gorm:"uniqueIndex;size:512;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
