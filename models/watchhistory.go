package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lịch sử xem: một bản ghi cho mỗi (user, content, episode-hoặc-null).
// Completed và progress luôn được tính lại từ watch_time/total_time,
// client không tự đặt được.
//
// Index unique trên bộ ba không chặn được dòng movie vì NULL không bao giờ
// bằng NULL trong index SQL; cần thêm partial index (user, content) riêng
// cho trường hợp episode_id IS NULL.
type WatchHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_content_episode;uniqueIndex:idx_user_content_movie,where:episode_id IS NULL" json:"user_id"`
	ContentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_content_episode;uniqueIndex:idx_user_content_movie,where:episode_id IS NULL" json:"content_id"`
	EpisodeID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_content_episode" json:"episode_id,omitempty"`

	WatchTime   int       `gorm:"default:0" json:"watch_time"` // giây
	TotalTime   int       `json:"total_time"`                  // giây
	Completed   bool      `gorm:"default:false" json:"completed"`
	LastWatched time.Time `json:"last_watched"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Content Content  `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"content,omitempty"`
	Episode *Episode `gorm:"foreignKey:EpisodeID" json:"episode,omitempty"`
}

func (w *WatchHistory) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
