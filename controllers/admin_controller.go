package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
)

func pageParams(c *gin.Context, defaultPerPage, maxPerPage int) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
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
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// GET /api/admin/dashboard/stats
func GetDashboardStats(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var totalUsers, totalContent, totalMovies, totalSeries, totalEpisodes int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.Content{}).Where("is_active = ?", true).Count(&totalContent)
	db.Model(&models.Content{}).Where("content_type = ? AND is_active = ?", models.ContentMovie, true).Count(&totalMovies)
	db.Model(&models.Content{}).Where("content_type = ? AND is_active = ?", models.ContentSeries, true).Count(&totalSeries)
	db.Model(&models.Episode{}).Where("is_active = ?", true).Count(&totalEpisodes)

	// User hoạt động trong 30 ngày
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	var activeUsers int64
	db.Model(&models.User{}).Where("last_login >= ?", thirtyDaysAgo).Count(&activeUsers)

	// Đăng ký mới trong 7 ngày
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	var newUsers int64
	db.Model(&models.User{}).Where("created_at >= ?", sevenDaysAgo).Count(&newUsers)

	var totalViews int64
	db.Model(&models.Content{}).Select("COALESCE(SUM(view_count), 0)").Scan(&totalViews)

	var topContent []models.Content
	db.Where("is_active = ?", true).Order("view_count DESC").Limit(5).Find(&topContent)

	var recentComments []models.Comment
	db.Preload("User").Where("is_active = ?", true).
		Order("created_at DESC").Limit(5).Find(&recentComments)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":    totalUsers,
			"active_users":   activeUsers,
			"new_users_week": newUsers,
			"total_content":  totalContent,
			"total_movies":   totalMovies,
			"total_series":   totalSeries,
			"total_episodes": totalEpisodes,
			"total_views":    totalViews,
		},
		"top_content":     topContent,
		"recent_comments": recentComments,
	})
}

// GET /api/admin/users
func GetAllUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	page, perPage := pageParams(c, 20, 100)

	query := db.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách user"})
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, publicUser(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"users": items,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// GET /api/admin/users/:id
// Kèm số liệu tương tác của user.
func GetUserDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID không hợp lệ"})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	var watchCount, favoriteCount, ratingCount, commentCount int64
	db.Model(&models.WatchHistory{}).Where("user_id = ?", userID).Count(&watchCount)
	db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&favoriteCount)
	db.Model(&models.Rating{}).Where("user_id = ?", userID).Count(&ratingCount)
	db.Model(&models.Comment{}).Where("user_id = ? AND is_active = ?", userID, true).Count(&commentCount)

	data := publicUser(user)
	data["statistics"] = gin.H{
		"watch_count":    watchCount,
		"favorite_count": favoriteCount,
		"rating_count":   ratingCount,
		"comment_count":  commentCount,
	}

	c.JSON(http.StatusOK, data)
}

// PATCH /api/admin/users/:id/toggle-status
func ToggleUserStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID không hợp lệ"})
		return
	}

	// Admin không tự khóa chính mình được
	if userID.String() == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể tự khóa tài khoản của mình"})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	user.IsActive = !user.IsActive
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái"})
		return
	}

	message := "Đã khóa tài khoản"
	if user.IsActive {
		message = "Đã mở khóa tài khoản"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    publicUser(user),
	})
}

// PATCH /api/admin/users/:id/make-admin
func MakeUserAdmin(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID không hợp lệ"})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	user.IsAdmin = true
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật quyền"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Đã cấp quyền admin",
		"user":    publicUser(user),
	})
}

// GET /api/admin/content/all
// Khác trang public: thấy cả content inactive.
func GetAllContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	page, perPage := pageParams(c, 20, 100)

	query := db.Model(&models.Content{})

	if contentType := c.Query("type"); contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}

	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	query.Count(&total)

	var items []models.Content
	if err := query.Preload("Genres").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": items,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// PATCH /api/admin/content/:id/toggle-status
func ToggleContentStatus(c *gin.Context) {
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

	content.IsActive = !content.IsActive
	if err := db.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái"})
		return
	}

	message := "Đã ẩn content"
	if content.IsActive {
		message = "Đã kích hoạt content"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"content": content,
	})
}

// PATCH /api/admin/content/:id/toggle-featured
func ToggleContentFeatured(c *gin.Context) {
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

	content.IsFeatured = !content.IsFeatured
	if err := db.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái"})
		return
	}

	message := "Đã bỏ nổi bật"
	if content.IsFeatured {
		message = "Đã đánh dấu nổi bật"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"content": content,
	})
}

// GET /api/admin/comments
func GetAllComments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	page, perPage := pageParams(c, 20, 100)

	query := db.Model(&models.Comment{})
	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	query.Count(&total)

	var comments []models.Comment
	if err := query.Preload("User").
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

// PATCH /api/admin/comments/:id/toggle-status
func ToggleCommentStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment ID không hợp lệ"})
		return
	}

	var comment models.Comment
	if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bình luận"})
		return
	}

	comment.IsActive = !comment.IsActive
	if err := db.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật bình luận"})
		return
	}

	message := "Đã ẩn bình luận"
	if comment.IsActive {
		message = "Đã khôi phục bình luận"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"comment": comment,
	})
}

// GET /api/admin/analytics/content-views
func GetContentAnalytics(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var topContent []models.Content
	db.Where("is_active = ?", true).Order("view_count DESC").Limit(10).Find(&topContent)

	type typeCount struct {
		ContentType string `json:"type"`
		Count       int64  `json:"count"`
	}
	var byType []typeCount
	db.Model(&models.Content{}).
		Select("content_type, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("content_type").
		Scan(&byType)

	type genreCount struct {
		Genre string `json:"genre"`
		Count int64  `json:"count"`
	}
	var byGenre []genreCount
	db.Table("genres").
		Select("genres.name AS genre, COUNT(content_genres.content_id) AS count").
		Joins("JOIN content_genres ON content_genres.genre_id = genres.id").
		Joins("JOIN contents ON contents.id = content_genres.content_id").
		Where("contents.is_active = ?", true).
		Group("genres.name").
		Scan(&byGenre)

	top := make([]gin.H, 0, len(topContent))
	for _, item := range topContent {
		top = append(top, gin.H{
			"title":        item.Title,
			"view_count":   item.ViewCount,
			"content_type": item.ContentType,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"top_content":      top,
		"content_by_type":  byType,
		"content_by_genre": byGenre,
	})
}

type BulkUpdateInput struct {
	ContentIDs []string `json:"content_ids" binding:"required"`
	Action     string   `json:"action" binding:"required"` // activate | deactivate | feature | unfeature
}

// POST /api/admin/content/bulk-update
func BulkUpdateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input BulkUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var updates map[string]interface{}
	switch input.Action {
	case "activate":
		updates = map[string]interface{}{"is_active": true}
	case "deactivate":
		updates = map[string]interface{}{"is_active": false}
	case "feature":
		updates = map[string]interface{}{"is_featured": true}
	case "unfeature":
		updates = map[string]interface{}{"is_featured": false}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action không hợp lệ"})
		return
	}

	contentIDs := make([]uuid.UUID, 0, len(input.ContentIDs))
	for _, s := range input.ContentIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content_ids không hợp lệ"})
			return
		}
		contentIDs = append(contentIDs, id)
	}

	updates["updated_at"] = time.Now()
	result := db.Model(&models.Content{}).Where("id IN ?", contentIDs).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật hàng loạt thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Cập nhật hàng loạt thành công",
		"updated_count": result.RowsAffected,
	})
}
