package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
	"github.com/vnkhanh/e-stream-backend/services"
	"github.com/vnkhanh/e-stream-backend/utils"
)

// GET /api/content
// Danh sách công khai: chỉ content active, lọc/sắp xếp/phân trang theo query.
func GetContents(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	filter := services.ContentFilter{
		ContentType: c.Query("type"),
		Search:      c.Query("search"),
		SortBy:      c.DefaultQuery("sort_by", "created_at"),
		Order:       c.DefaultQuery("order", "desc"),
		Page:        1,
		PerPage:     20,
	}

	if p := c.Query("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil {
			filter.Page = val
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if val, err := strconv.Atoi(pp); err == nil {
			filter.PerPage = val
		}
	}

	if g := c.Query("genre_id"); g != "" {
		genreID, err := uuid.Parse(g)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre_id không hợp lệ"})
			return
		}
		filter.GenreID = &genreID
	}

	// featured=true lọc nổi bật, featured=false lọc không nổi bật,
	// không truyền thì bỏ qua
	switch c.Query("featured") {
	case "true":
		v := true
		filter.Featured = &v
	case "false":
		v := false
		filter.Featured = &v
	}

	items, total, err := services.ListContent(db, &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": items,
		"pagination": gin.H{
			"page":     filter.Page,
			"per_page": filter.PerPage,
			"total":    total,
			"pages":    (total + int64(filter.PerPage) - 1) / int64(filter.PerPage),
		},
	})
}

// GET /api/content/:id
// Mỗi lần xem chi tiết là một lượt view.
func GetContentDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var content models.Content
	if err := db.Preload("Genres").
		Where("id = ? AND is_active = ?", contentID, true).
		First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy content"})
		return
	}

	// Tăng view_count bằng UPDATE nguyên tử, không read-modify-write
	if err := services.IncrementViewCount(db, contentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật lượt xem"})
		return
	}
	content.ViewCount++

	if content.ContentType == models.ContentSeries {
		db.Where("series_id = ? AND is_active = ?", contentID, true).
			Order("season_number, episode_number").
			Find(&content.Episodes)
	}

	c.JSON(http.StatusOK, content)
}

type ContentInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ContentType string   `json:"content_type" binding:"required"`
	CoverImage  string   `json:"cover_image"`
	TrailerURL  string   `json:"trailer_url"`
	VideoURL    string   `json:"video_url"`
	ReleaseYear int      `json:"release_year"`
	Duration    int      `json:"duration"`
	IMDBRating  float64  `json:"imdb_rating"`
	Language    string   `json:"language"`
	Country     string   `json:"country"`
	Director    string   `json:"director"`
	Cast        string   `json:"cast"`
	IsFeatured  bool     `json:"is_featured"`
	GenreIDs    []string `json:"genre_ids"`
}

func findGenres(db *gorm.DB, ids []string) ([]models.Genre, error) {
	genreIDs := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		genreIDs = append(genreIDs, id)
	}
	var genres []models.Genre
	if len(genreIDs) == 0 {
		return genres, nil
	}
	err := db.Where("id IN ?", genreIDs).Find(&genres).Error
	return genres, err
}

// POST /api/admin/content
func CreateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ContentType != string(models.ContentMovie) && input.ContentType != string(models.ContentSeries) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type phải là movie hoặc series"})
		return
	}

	content := models.Content{
		Title:       input.Title,
		Description: input.Description,
		ContentType: models.ContentType(input.ContentType),
		CoverImage:  input.CoverImage,
		TrailerURL:  input.TrailerURL,
		VideoURL:    input.VideoURL,
		ReleaseYear: input.ReleaseYear,
		Duration:    input.Duration,
		IMDBRating:  input.IMDBRating,
		Language:    input.Language,
		Country:     input.Country,
		Director:    input.Director,
		Cast:        input.Cast,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
	}

	if input.GenreIDs != nil {
		genres, err := findGenres(db, input.GenreIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre_ids không hợp lệ"})
			return
		}
		content.Genres = genres
	}

	if err := db.Create(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo content thành công",
		"content": content,
	})
}

type UpdateContentInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	CoverImage  *string  `json:"cover_image,omitempty"`
	TrailerURL  *string  `json:"trailer_url,omitempty"`
	VideoURL    *string  `json:"video_url,omitempty"`
	ReleaseYear *int     `json:"release_year,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	IMDBRating  *float64 `json:"imdb_rating,omitempty"`
	Language    *string  `json:"language,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Director    *string  `json:"director,omitempty"`
	Cast        *string  `json:"cast,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
	GenreIDs    []string `json:"genre_ids,omitempty"`
}

// PUT /api/admin/content/:id
func UpdateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var content models.Content
	if err := db.First(&content, "id = ?", contentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
		return
	}

	var input UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		content.Title = *input.Title
	}
	if input.Description != nil {
		content.Description = *input.Description
	}
	if input.CoverImage != nil {
		content.CoverImage = *input.CoverImage
	}
	if input.TrailerURL != nil {
		content.TrailerURL = *input.TrailerURL
	}
	if input.VideoURL != nil {
		content.VideoURL = *input.VideoURL
	}
	if input.ReleaseYear != nil {
		content.ReleaseYear = *input.ReleaseYear
	}
	if input.Duration != nil {
		content.Duration = *input.Duration
	}
	if input.IMDBRating != nil {
		content.IMDBRating = *input.IMDBRating
	}
	if input.Language != nil {
		content.Language = *input.Language
	}
	if input.Country != nil {
		content.Country = *input.Country
	}
	if input.Director != nil {
		content.Director = *input.Director
	}
	if input.Cast != nil {
		content.Cast = *input.Cast
	}
	if input.IsFeatured != nil {
		content.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		content.IsActive = *input.IsActive
	}

	if err := db.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật content"})
		return
	}

	if input.GenreIDs != nil {
		genres, err := findGenres(db, input.GenreIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre_ids không hợp lệ"})
			return
		}
		if err := db.Model(&content).Association("Genres").Replace(genres); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật thể loại"})
			return
		}
		content.Genres = genres
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật content thành công",
		"content": content,
	})
}

// DELETE /api/admin/content/:id
// Soft delete: chỉ tắt is_active.
func DeleteContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	result := db.Model(&models.Content{}).
		Where("id = ?", contentID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa content"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa content"})
}

// POST /api/admin/content/:id/cover
// Upload ảnh bìa lên Supabase rồi gắn URL vào content.
func UploadContentCover(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content ID không hợp lệ"})
		return
	}

	var content models.Content
	if err := db.First(&content, "id = ?", contentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content không tồn tại"})
		return
	}

	file, err := c.FormFile("cover_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file đính kèm"})
		return
	}

	imageURL, err := utils.UploadImageToSupabase(file, uuid.New().String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể upload hình ảnh", "details": err.Error()})
		return
	}

	content.CoverImage = imageURL
	if err := db.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Upload ảnh bìa thành công",
		"cover_image": imageURL,
	})
}
