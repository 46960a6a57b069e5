package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tập phim, chỉ tồn tại dưới một Content dạng series.
// (series, season_number, episode_number) là duy nhất.
type Episode struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SeriesID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_series_season_episode" json:"series_id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	SeasonNumber  int        `gorm:"not null;uniqueIndex:idx_series_season_episode" json:"season_number"`
	EpisodeNumber int        `gorm:"not null;uniqueIndex:idx_series_season_episode" json:"episode_number"`
	Duration      int        `json:"duration"` // phút
	VideoURL      string     `gorm:"size:500" json:"video_url"`
	Thumbnail     string     `gorm:"size:500" json:"thumbnail"`
	AirDate       *time.Time `json:"air_date,omitempty"`
	IsActive      bool       `json:"is_active"`
	ViewCount     int64      `gorm:"default:0" json:"view_count"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Series Content `gorm:"foreignKey:SeriesID" json:"-"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
