package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/services"
)

// GET /api/search?q=...
func SearchContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	items, err := services.SearchContent(db, c.Query("q"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Từ khóa tìm kiếm không được để trống"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Tìm kiếm thất bại"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GET /api/recommendations
// Gợi ý theo thể loại đã xem; user mới thì trả top phổ biến (cold start).
func GetRecommendations(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	items, err := services.Recommend(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy gợi ý"})
		return
	}

	c.JSON(http.StatusOK, items)
}
