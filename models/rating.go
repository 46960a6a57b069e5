package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mỗi user chỉ có một đánh giá trên một content, ghi lại thì ghi đè.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content_rating" json:"user_id"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_content_rating" json:"content_id"`
	Score     float64   `gorm:"not null" json:"score"` // 1-10
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Content Content `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
