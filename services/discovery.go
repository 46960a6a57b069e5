package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
)

const (
	maxPerPage         = 100
	searchLimit        = 20
	recommendationSize = 10
)

// ContentFilter gom các tham số lọc/sắp xếp của trang danh sách.
type ContentFilter struct {
	ContentType string     // "movie" | "series" | ""
	GenreID     *uuid.UUID
	Search      string
	Featured    *bool // nil = không lọc; false lọc non-featured (xem DESIGN.md)
	SortBy      string
	Order       string
	Page        int
	PerPage     int
}

// ListContent trả danh sách content active theo filter + tổng số bản ghi.
// Tham số phân trang sai thì kẹp về mặc định, per_page trần 100; giá trị
// sau khi kẹp được ghi ngược vào f để caller echo đúng trong response.
func ListContent(db *gorm.DB, f *ContentFilter) ([]models.Content, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}

	query := db.Model(&models.Content{}).Where("is_active = ?", true)

	if f.ContentType != "" {
		query = query.Where("content_type = ?", f.ContentType)
	}

	if f.GenreID != nil {
		query = query.Where(
			"id IN (?)",
			db.Table("content_genres").Select("content_id").Where("genre_id = ?", *f.GenreID),
		)
	}

	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(director) LIKE ? OR LOWER(\"cast\") LIKE ?",
			term, term, term, term,
		)
	}

	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}

	// Chỉ nhận khóa sắp xếp trong whitelist
	sortBy := f.SortBy
	switch sortBy {
	case "rating", "view_count", "title", "created_at":
	default:
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		order = "ASC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Content
	err := query.Preload("Genres").
		Order(sortBy + " " + order).
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// SearchContent tìm theo title/description/director/cast, chỉ content active,
// xếp theo lượt xem giảm dần, tối đa 20 kết quả. Query rỗng bị từ chối.
func SearchContent(db *gorm.DB, query string) ([]models.Content, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query rỗng", ErrInvalidArgument)
	}

	term := "%" + strings.ToLower(query) + "%"
	var items []models.Content
	err := db.Preload("Genres").
		Where("is_active = ?", true).
		Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(director) LIKE ? OR LOWER(\"cast\") LIKE ?",
			term, term, term, term,
		).
		Order("view_count DESC").
		Limit(searchLimit).
		Find(&items).Error
	return items, err
}

// Recommend gợi ý content theo thể loại user đã xem: lấy các genre xuất hiện
// trong lịch sử xem, đề xuất content active cùng genre mà user chưa xem,
// xếp theo (rating desc, view_count desc), tối đa 10. Chưa có lịch sử thì
// rơi về top phổ biến toàn cục cùng thứ tự — cold start vẫn trả kết quả
// miễn là catalog không rỗng.
func Recommend(db *gorm.DB, userID uuid.UUID) ([]models.Content, error) {
	var genreIDs []uuid.UUID
	err := db.Table("content_genres").
		Distinct("content_genres.genre_id").
		Joins("JOIN watch_histories ON watch_histories.content_id = content_genres.content_id").
		Where("watch_histories.user_id = ?", userID).
		Pluck("content_genres.genre_id", &genreIDs).Error
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Content{}).
		Preload("Genres").
		Where("is_active = ?", true).
		Order("rating DESC, view_count DESC").
		Limit(recommendationSize)

	if len(genreIDs) > 0 {
		query = query.
			Where(
				"id IN (?)",
				db.Table("content_genres").Select("content_id").Where("genre_id IN ?", genreIDs),
			).
			Where(
				"id NOT IN (?)",
				db.Model(&models.WatchHistory{}).Select("content_id").Where("user_id = ?", userID),
			)
	}

	var items []models.Content
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
