package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
	"github.com/vnkhanh/e-stream-backend/ws"
)

// GET /api/notifications
func GetNotifications(c *gin.Context) {
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

	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread_only") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy thông báo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// GET /api/notifications/unread-count
func GetUnreadCount(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")

	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// PUT /api/notifications/:id/read
func MarkNotificationAsRead(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notification ID không hợp lệ"})
		return
	}

	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thông báo"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy thông báo"})
		return
	}

	// Cập nhật badge realtime
	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	ws.SendBadgeUpdate(userID, count)

	c.JSON(http.StatusOK, gin.H{"message": "Đã đánh dấu đã đọc"})
}

// PUT /api/notifications/read-all
func MarkAllAsRead(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")

	now := time.Now()
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thông báo"})
		return
	}

	ws.SendBadgeUpdate(userID, 0)

	c.JSON(http.StatusOK, gin.H{"message": "Đã đánh dấu tất cả đã đọc"})
}
