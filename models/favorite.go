package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ContentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"content_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Content Content `gorm:"constraint:OnDelete:CASCADE" json:"content,omitempty"`
}
