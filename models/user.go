package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionType string

const (
	SubscriptionFree    SubscriptionType = "free"
	SubscriptionPremium SubscriptionType = "premium"
)

type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string           `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string           `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string           `gorm:"type:text;not null" json:"-"`
	IsAdmin      bool             `gorm:"default:false" json:"is_admin"`
	IsActive     bool             `json:"is_active"`
	Subscription SubscriptionType `gorm:"type:varchar(20);default:'free'" json:"subscription_type"`
	SubscriptionExpires *time.Time `json:"subscription_expires,omitempty"`
	LastLogin    *time.Time       `json:"last_login,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Ratings      []Rating       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments     []Comment      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	WatchHistory []WatchHistory `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Favorites    []Favorite     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
