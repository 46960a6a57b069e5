package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentMovie  ContentType = "movie"
	ContentSeries ContentType = "series"
)

type Content struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ContentType ContentType `gorm:"type:varchar(20);not null" json:"content_type"` // movie | series
	CoverImage  string      `gorm:"size:500" json:"cover_image"`
	TrailerURL  string      `gorm:"size:500" json:"trailer_url"`
	VideoURL    string      `gorm:"size:500" json:"video_url"` // chỉ dùng cho movie
	ReleaseYear int         `json:"release_year"`
	Duration    int         `json:"duration"` // phút
	Rating      float64     `gorm:"default:0" json:"rating"` // trung bình, tính lại từ bảng ratings
	IMDBRating  float64     `json:"imdb_rating"`
	Language    string      `gorm:"size:50" json:"language"`
	Country     string      `gorm:"size:100" json:"country"`
	Director    string      `gorm:"size:200" json:"director"`
	Cast        string      `gorm:"type:text" json:"cast"`
	// Không có tag default: gorm bỏ qua giá trị zero khi cột có default,
	// tạo bản ghi IsActive=false sẽ bị lật ngược thành true.
	IsActive    bool        `json:"is_active"`
	IsFeatured  bool        `gorm:"default:false" json:"is_featured"`
	ViewCount   int64       `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Genres   []Genre   `gorm:"many2many:content_genres" json:"genres"`
	Episodes []Episode `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"episodes,omitempty"`
	Ratings  []Rating  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
