package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/models"
)

// RecomputeAverageRating tính lại điểm trung bình của content từ bảng ratings
// và ghi đè content.rating. Không có đánh giá nào thì về 0.
// Phải gọi trên cùng tx với lần ghi rating để đọc thấy dòng vừa ghi.
func RecomputeAverageRating(tx *gorm.DB, contentID uuid.UUID) error {
	var avg float64
	err := tx.Model(&models.Rating{}).
		Where("content_id = ?", contentID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Content{}).
		Where("id = ?", contentID).
		UpdateColumn("rating", avg).Error
}

// UpsertRating ghi đánh giá của user cho content (ghi đè nếu đã có) rồi tính
// lại trung bình, tất cả trong một transaction. Trả về true nếu là tạo mới.
func UpsertRating(db *gorm.DB, userID, contentID uuid.UUID, score float64) (created bool, err error) {
	if score < 1 || score > 10 {
		return false, fmt.Errorf("%w: score phải nằm trong [1,10]", ErrInvalidArgument)
	}

	var content models.Content
	if err := db.Where("id = ? AND is_active = ?", contentID, true).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: content", ErrNotFound)
		}
		return false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var rating models.Rating
		result := tx.Where("user_id = ? AND content_id = ?", userID, contentID).First(&rating)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			rating = models.Rating{
				UserID:    userID,
				ContentID: contentID,
				Score:     score,
			}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
			created = true
		} else if result.Error == nil {
			rating.Score = score
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		} else {
			return result.Error
		}

		return RecomputeAverageRating(tx, contentID)
	})
	return created, err
}

// IncrementViewCount tăng view_count bằng một câu UPDATE duy nhất,
// tăng đồng thời từ nhiều request không mất lượt nào.
func IncrementViewCount(db *gorm.DB, contentID uuid.UUID) error {
	result := db.Model(&models.Content{}).
		Where("id = ?", contentID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: content", ErrNotFound)
	}
	return nil
}

// DeriveWatchCompletion: xem đủ 90% thì coi là hoàn thành.
func DeriveWatchCompletion(watchTime, totalTime int) (completed bool, progress float64) {
	if totalTime <= 0 {
		return false, 0
	}
	completed = float64(watchTime) >= 0.9*float64(totalTime)
	progress = 100 * float64(watchTime) / float64(totalTime)
	if progress > 100 {
		progress = 100
	}
	return completed, progress
}

// UpsertWatchProgress lưu hoặc cập nhật tiến độ xem. Episode (nếu có) phải
// thuộc đúng series và còn active.
func UpsertWatchProgress(db *gorm.DB, userID, contentID uuid.UUID, episodeID *uuid.UUID, watchTime, totalTime int) (*models.WatchHistory, error) {
	var content models.Content
	if err := db.Where("id = ? AND is_active = ?", contentID, true).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: content", ErrNotFound)
		}
		return nil, err
	}

	if episodeID != nil {
		var episode models.Episode
		if err := db.Where("id = ? AND series_id = ? AND is_active = ?", *episodeID, contentID, true).
			First(&episode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: episode", ErrNotFound)
			}
			return nil, err
		}
	}

	completed, _ := DeriveWatchCompletion(watchTime, totalTime)
	now := time.Now()

	query := db.Where("user_id = ? AND content_id = ?", userID, contentID)
	if episodeID != nil {
		query = query.Where("episode_id = ?", *episodeID)
	} else {
		query = query.Where("episode_id IS NULL")
	}

	var history models.WatchHistory
	result := query.First(&history)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		history = models.WatchHistory{
			UserID:      userID,
			ContentID:   contentID,
			EpisodeID:   episodeID,
			WatchTime:   watchTime,
			TotalTime:   totalTime,
			Completed:   completed,
			LastWatched: now,
		}
		if err := db.Create(&history).Error; err != nil {
			return nil, err
		}
	} else if result.Error == nil {
		history.WatchTime = watchTime
		history.TotalTime = totalTime
		history.Completed = completed
		history.LastWatched = now
		if err := db.Save(&history).Error; err != nil {
			return nil, err
		}
	} else {
		return nil, result.Error
	}

	return &history, nil
}
