package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"` // người nhận
	Title   string    `gorm:"size:200;not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Type    string    `gorm:"size:50" json:"notification_type"` // new_episode | new_season | recommendation | favorite
	IsRead  bool      `gorm:"default:false" json:"is_read"`

	ContentID *uuid.UUID `gorm:"type:uuid" json:"content_id,omitempty"` // nội dung liên quan (nếu có)

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
