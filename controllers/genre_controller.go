package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
)

// GET /api/genres
func GetGenres(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var genres []models.Genre
	if err := db.Order("name").Find(&genres).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách thể loại"})
		return
	}

	c.JSON(http.StatusOK, genres)
}

type GenreInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/admin/genres
func CreateGenre(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input GenreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Genre
	err := db.Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Thể loại đã tồn tại"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi kiểm tra thể loại"})
		return
	}

	genre := models.Genre{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := db.Create(&genre).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo thể loại"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo thể loại thành công",
		"genre":   genre,
	})
}
