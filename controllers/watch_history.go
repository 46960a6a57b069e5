package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
	"github.com/vnkhanh/e-stream-backend/services"
)

// Request body cho việc cập nhật lịch sử xem
type SaveWatchHistoryInput struct {
	ContentID string  `json:"content_id" binding:"required"`
	EpisodeID *string `json:"episode_id,omitempty"`
	WatchTime int     `json:"watch_time" binding:"min=0"`
	TotalTime int     `json:"total_time" binding:"required,min=1"`
}

// POST /api/watch-history
// Lưu hoặc cập nhật tiến độ xem; completed và progress luôn được tính lại
// từ watch_time/total_time.
func SaveWatchHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	var input SaveWatchHistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentID, err := uuid.Parse(input.ContentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id không hợp lệ"})
		return
	}

	var episodeID *uuid.UUID
	if input.EpisodeID != nil {
		id, err := uuid.Parse(*input.EpisodeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "episode_id không hợp lệ"})
			return
		}
		episodeID = &id
	}

	history, err := services.UpsertWatchProgress(db, userID, contentID, episodeID, input.WatchTime, input.TotalTime)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content hoặc tập không tồn tại"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu lịch sử xem"})
		return
	}

	_, progress := services.DeriveWatchCompletion(history.WatchTime, history.TotalTime)

	c.JSON(http.StatusOK, gin.H{
		"message":             "Lưu lịch sử xem thành công",
		"watch_history":       history,
		"progress_percentage": progress,
	})
}

// GET /api/watch-history
func GetWatchHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")

	page := 1
	perPage := 20
	if p := c.Query("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil && val > 0 {
			page = val
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if val, err := strconv.Atoi(pp); err == nil && val > 0 {
			perPage = val
		}
	}
	if perPage > 50 {
		perPage = 50
	}

	query := db.Model(&models.WatchHistory{}).Where("user_id = ?", userID)

	// Lọc theo trạng thái hoàn thành
	switch c.Query("completed") {
	case "true":
		query = query.Where("completed = ?", true)
	case "false":
		query = query.Where("completed = ?", false)
	}

	var total int64
	query.Count(&total)

	var histories []models.WatchHistory
	if err := query.
		Preload("Content").
		Preload("Content.Genres").
		Preload("Episode").
		Order("last_watched DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&histories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy lịch sử xem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"watch_history": histories,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// DELETE /api/watch-history/:content_id
func DeleteWatchHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id không hợp lệ"})
		return
	}

	result := db.Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&models.WatchHistory{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa lịch sử"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không có lịch sử xem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa lịch sử xem"})
}

// DELETE /api/watch-history
func ClearWatchHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	if err := db.Where("user_id = ?", userID).Delete(&models.WatchHistory{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa lịch sử"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa toàn bộ lịch sử xem"})
}
