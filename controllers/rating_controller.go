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

type RateContentInput struct {
	Score float64 `json:"score" binding:"required"`
}

// POST /api/content/:id/rate
// Mỗi user một đánh giá trên một content; gửi lại thì ghi đè. Điểm trung bình
// của content được tính lại trong cùng transaction với lần ghi.
func RateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var input RateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := services.UpsertRating(db, userID, contentID, input.Score)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Điểm đánh giá phải nằm trong khoảng 1-10"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu đánh giá"})
		}
		return
	}

	message := "Cập nhật đánh giá thành công"
	if created {
		message = "Thêm đánh giá thành công"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GET /api/content/:id/my-rating
// Đánh giá của chính user đang đăng nhập.
func GetUserRating(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var rating models.Rating
	if err := db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&rating).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chưa có đánh giá"})
		return
	}

	c.JSON(http.StatusOK, rating)
}

// GET /api/content/:id/ratings
// Danh sách đánh giá công khai của một content, có phân trang.
func GetContentRatings(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	page := 1
	perPage := 10
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

	query := db.Model(&models.Rating{}).Where("content_id = ?", contentID)

	var total int64
	query.Count(&total)

	var ratings []models.Rating
	if err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách đánh giá"})
		return
	}

	// Không trả cả user object, chỉ lấy username
	items := make([]gin.H, 0, len(ratings))
	for _, r := range ratings {
		items = append(items, gin.H{
			"id":         r.ID,
			"user_id":    r.UserID,
			"content_id": r.ContentID,
			"score":      r.Score,
			"username":   r.User.Username,
			"created_at": r.CreatedAt,
			"updated_at": r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings": items,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}
