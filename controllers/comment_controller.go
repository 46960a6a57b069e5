package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
)

type CreateCommentInput struct {
	Text     string  `json:"text" binding:"required"`
	ParentID *string `json:"parent_id,omitempty"`
}

// POST /api/content/:id/comments
func CreateComment(c *gin.Context) {
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

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bình luận không được để trống"})
		return
	}

	var content models.Content
	if err := db.Where("id = ? AND is_active = ?", contentID, true).First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
		return
	}

	var parentID *uuid.UUID
	if input.ParentID != nil {
		id, err := uuid.Parse(*input.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent_id không hợp lệ"})
			return
		}
		// Comment cha phải thuộc cùng content
		var parent models.Comment
		if err := db.Where("id = ? AND content_id = ?", id, contentID).First(&parent).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bình luận cha không tồn tại"})
			return
		}
		parentID = &id
	}

	comment := models.Comment{
		ContentID: contentID,
		UserID:    userID,
		Text:      text,
		ParentID:  parentID,
		IsActive:  true,
	}

	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo bình luận"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thêm bình luận thành công",
		"comment": comment,
	})
}

// GET /api/content/:id/comments
// Chỉ lấy comment gốc, reply (active) được preload một cấp —
// truy vấn theo parent_id nên không đệ quy vô hạn.
func GetComments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

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

	query := db.Model(&models.Comment{}).
		Where("content_id = ? AND parent_id IS NULL AND is_active = ?", contentID, true)

	var total int64
	query.Count(&total)

	var comments []models.Comment
	if err := query.
		Preload("User").
		Preload("Replies", "is_active = ?", true).
		Preload("Replies.User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy bình luận"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

type UpdateCommentInput struct {
	Text string `json:"text" binding:"required"`
}

// PUT /api/comments/:id
// Chỉ chủ bình luận mới sửa được.
func UpdateComment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment ID không hợp lệ"})
		return
	}

	var input UpdateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bình luận không được để trống"})
		return
	}

	var comment models.Comment
	if err := db.Where("id = ? AND user_id = ?", commentID, userID).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bình luận"})
		return
	}

	comment.Text = text
	if err := db.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật bình luận"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật bình luận thành công",
		"comment": comment,
	})
}

// DELETE /api/comments/:id
// Soft delete: tắt is_active.
func DeleteComment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID := c.GetString("user_id")
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment ID không hợp lệ"})
		return
	}

	result := db.Model(&models.Comment{}).
		Where("id = ? AND user_id = ?", commentID, userID).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bình luận"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bình luận"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa bình luận"})
}
