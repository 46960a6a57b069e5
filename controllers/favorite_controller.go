package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
)

type AddFavoriteInput struct {
	ContentID string `json:"content_id" binding:"required"`
}

// POST /api/favorites
// (user, content) là duy nhất: đã có rồi thì trả 409, không tạo dòng thứ hai.
func AddFavorite(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	var input AddFavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentID, err := uuid.Parse(input.ContentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id không hợp lệ"})
		return
	}

	var content models.Content
	if err := db.Where("id = ? AND is_active = ?", contentID, true).First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
		return
	}

	// Kiểm tra xem đã tồn tại chưa
	var fav models.Favorite
	err = db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&fav).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Content đã có trong danh sách yêu thích"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi kiểm tra yêu thích"})
		return
	}

	newFav := models.Favorite{
		UserID:    userID,
		ContentID: contentID,
	}

	if err := db.Create(&newFav).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể thêm yêu thích"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Đã thêm vào danh sách yêu thích",
		"favorite": newFav,
	})
}

// GET /api/favorites
func GetFavorites(c *gin.Context) {
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

	query := db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var favorites []models.Favorite
	if err := query.
		Preload("Content").
		Preload("Content.Genres").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách yêu thích"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// DELETE /api/favorites/:content_id
// Favorite bị xóa hẳn, không soft delete.
func RemoveFavorite(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id không hợp lệ"})
		return
	}

	result := db.Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể bỏ yêu thích"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy trong danh sách yêu thích"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã bỏ khỏi danh sách yêu thích"})
}

// GET /api/favorites/:content_id/check
func CheckFavorite(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	contentID, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id không hợp lệ"})
		return
	}

	var fav models.Favorite
	if err := db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&fav).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"is_favorite": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": true})
}
