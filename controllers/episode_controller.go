package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
	"github.com/vnkhanh/e-stream-backend/ws"
)

// GET /api/content/:id/episodes
func GetEpisodes(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var series models.Content
	if err := db.Where("id = ? AND content_type = ? AND is_active = ?", seriesID, models.ContentSeries, true).
		First(&series).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Series không tồn tại"})
		return
	}

	query := db.Where("series_id = ? AND is_active = ?", seriesID, true)
	if s := c.Query("season"); s != "" {
		if season, err := strconv.Atoi(s); err == nil {
			query = query.Where("season_number = ?", season)
		}
	}

	var episodes []models.Episode
	if err := query.Order("season_number, episode_number").Find(&episodes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách tập"})
		return
	}

	c.JSON(http.StatusOK, episodes)
}

type EpisodeInput struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	SeasonNumber  int    `json:"season_number" binding:"required,min=1"`
	EpisodeNumber int    `json:"episode_number" binding:"required,min=1"`
	Duration      int    `json:"duration"`
	VideoURL      string `json:"video_url"`
	Thumbnail     string `json:"thumbnail"`
	AirDate       string `json:"air_date"` // YYYY-MM-DD
}

// Báo cho các user đã favorite series khi có tập mới, kèm đẩy badge realtime
func notifyNewEpisode(db *gorm.DB, series models.Content, episode models.Episode) {
	var favorites []models.Favorite
	if err := db.Where("content_id = ?", series.ID).Find(&favorites).Error; err != nil {
		return
	}

	for _, fav := range favorites {
		contentID := series.ID
		noti := models.Notification{
			UserID:    fav.UserID,
			Title:     "Tập mới: " + series.Title,
			Message:   series.Title + " vừa có tập mới \"" + episode.Title + "\"",
			Type:      "new_episode",
			ContentID: &contentID,
		}
		db.Create(&noti)

		payload := map[string]interface{}{
			"type":       "new_episode",
			"title":      noti.Title,
			"message":    noti.Message,
			"content_id": series.ID.String(),
			"episode_id": episode.ID.String(),
		}
		if data, err := json.Marshal(payload); err == nil {
			ws.H.BroadcastToUser(fav.UserID.String(), websocket.TextMessage, data)
		}

		// Đếm chưa đọc
		var count int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", fav.UserID, false).
			Count(&count)
		ws.SendBadgeUpdate(fav.UserID.String(), count)
	}
}

// POST /api/admin/content/:id/episodes
func CreateEpisode(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var series models.Content
	if err := db.Where("id = ? AND content_type = ?", seriesID, models.ContentSeries).
		First(&series).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Series không tồn tại"})
		return
	}

	var input EpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// (series, season, episode) là duy nhất
	var existing models.Episode
	err = db.Where("series_id = ? AND season_number = ? AND episode_number = ?",
		seriesID, input.SeasonNumber, input.EpisodeNumber).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tập này đã tồn tại"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi kiểm tra tập"})
		return
	}

	episode := models.Episode{
		SeriesID:      seriesID,
		Title:         input.Title,
		Description:   input.Description,
		SeasonNumber:  input.SeasonNumber,
		EpisodeNumber: input.EpisodeNumber,
		Duration:      input.Duration,
		VideoURL:      input.VideoURL,
		Thumbnail:     input.Thumbnail,
		IsActive:      true,
	}

	if input.AirDate != "" {
		airDate, err := time.Parse("2006-01-02", input.AirDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "air_date phải có dạng YYYY-MM-DD"})
			return
		}
		episode.AirDate = &airDate
	}

	if err := db.Create(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo tập"})
		return
	}

	go notifyNewEpisode(db, series, episode)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo tập thành công",
		"episode": episode,
	})
}
