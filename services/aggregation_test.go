package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/e-stream-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Mỗi test một DB in-memory riêng, cache=shared để mọi connection
	// trong pool nhìn thấy cùng một DB.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("mở sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Content{},
		&models.Episode{},
		&models.Rating{},
		&models.Comment{},
		&models.WatchHistory{},
		&models.Favorite{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedContent(t *testing.T, db *gorm.DB, c models.Content) models.Content {
	t.Helper()
	if c.ContentType == "" {
		c.ContentType = models.ContentMovie
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed content %s: %v", c.Title, err)
	}
	return c
}

// Trạng thái inactive phải ghi được ngay lúc Create: tag default của gorm
// bỏ qua giá trị zero nên IsActive=false từng bị lật thành true trong DB.
func TestCreatePreservesInactive(t *testing.T) {
	db := newTestDB(t)

	hidden := seedContent(t, db, models.Content{Title: "Ẩn từ đầu", IsActive: false})
	var content models.Content
	if err := db.First(&content, "id = ?", hidden.ID).Error; err != nil {
		t.Fatal(err)
	}
	if content.IsActive {
		t.Error("content tạo với IsActive=false nhưng DB lưu is_active=true")
	}

	locked := models.User{Username: "locked", Email: "locked@example.com", PasswordHash: "x", IsActive: false}
	if err := db.Create(&locked).Error; err != nil {
		t.Fatal(err)
	}
	var user models.User
	db.First(&user, "id = ?", locked.ID)
	if user.IsActive {
		t.Error("user tạo với IsActive=false nhưng DB lưu is_active=true")
	}

	episode := models.Episode{SeriesID: hidden.ID, Title: "Tập ẩn", SeasonNumber: 1, EpisodeNumber: 1, IsActive: false}
	if err := db.Create(&episode).Error; err != nil {
		t.Fatal(err)
	}
	var ep models.Episode
	db.First(&ep, "id = ?", episode.ID)
	if ep.IsActive {
		t.Error("episode tạo với IsActive=false nhưng DB lưu is_active=true")
	}

	comment := models.Comment{ContentID: hidden.ID, UserID: locked.ID, Text: "ẩn", IsActive: false}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatal(err)
	}
	var cm models.Comment
	db.First(&cm, "id = ?", comment.ID)
	if cm.IsActive {
		t.Error("comment tạo với IsActive=false nhưng DB lưu is_active=true")
	}
}

func TestDeriveWatchCompletion(t *testing.T) {
	tests := []struct {
		watch, total  int
		wantCompleted bool
		wantProgress  float64
	}{
		{0, 100, false, 0},
		{89, 100, false, 89},
		{90, 100, true, 90},
		{100, 100, true, 100},
		{150, 100, true, 100}, // progress kẹp ở 100
		{9, 10, true, 90},
		{8, 10, false, 80},
		{50, 0, false, 0}, // total_time không hợp lệ
		{0, 0, false, 0},
	}

	for _, tt := range tests {
		completed, progress := DeriveWatchCompletion(tt.watch, tt.total)
		if completed != tt.wantCompleted || progress != tt.wantProgress {
			t.Errorf("DeriveWatchCompletion(%d, %d) = (%v, %v), muốn (%v, %v)",
				tt.watch, tt.total, completed, progress, tt.wantCompleted, tt.wantProgress)
		}
	}
}

func TestUpsertRating(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	movie := seedContent(t, db, models.Content{Title: "Hồi ức", IsActive: true})

	created, err := UpsertRating(db, alice.ID, movie.ID, 8)
	if err != nil {
		t.Fatalf("rating đầu tiên: %v", err)
	}
	if !created {
		t.Error("rating đầu tiên phải là created=true")
	}

	created, err = UpsertRating(db, bob.ID, movie.ID, 10)
	if err != nil {
		t.Fatalf("rating thứ hai: %v", err)
	}
	if !created {
		t.Error("rating của user khác phải là created=true")
	}

	var got models.Content
	db.First(&got, "id = ?", movie.ID)
	if got.Rating != 9 {
		t.Errorf("trung bình sau (8, 10) = %v, muốn 9", got.Rating)
	}

	// Đánh giá lại thì ghi đè, không tạo dòng mới
	created, err = UpsertRating(db, bob.ID, movie.ID, 4)
	if err != nil {
		t.Fatalf("ghi đè rating: %v", err)
	}
	if created {
		t.Error("ghi đè rating phải là created=false")
	}

	var count int64
	db.Model(&models.Rating{}).Where("content_id = ?", movie.ID).Count(&count)
	if count != 2 {
		t.Errorf("số rating = %d, muốn 2", count)
	}

	db.First(&got, "id = ?", movie.ID)
	if got.Rating != 6 {
		t.Errorf("trung bình sau ghi đè (8, 4) = %v, muốn 6", got.Rating)
	}
}

func TestUpsertRatingValidation(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	movie := seedContent(t, db, models.Content{Title: "Phim", IsActive: true})
	hidden := seedContent(t, db, models.Content{Title: "Ẩn", IsActive: false})

	for _, score := range []float64{0, 0.5, 10.5, -1} {
		if _, err := UpsertRating(db, alice.ID, movie.ID, score); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("score %v: err = %v, muốn ErrInvalidArgument", score, err)
		}
	}

	if _, err := UpsertRating(db, alice.ID, uuid.New(), 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("content không tồn tại: err = %v, muốn ErrNotFound", err)
	}
	if _, err := UpsertRating(db, alice.ID, hidden.ID, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("content inactive: err = %v, muốn ErrNotFound", err)
	}
}

func TestRecomputeAverageRatingIdempotent(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	movie := seedContent(t, db, models.Content{Title: "Phim", IsActive: true})

	if _, err := UpsertRating(db, alice.ID, movie.ID, 7); err != nil {
		t.Fatal(err)
	}
	if err := RecomputeAverageRating(db, movie.ID); err != nil {
		t.Fatal(err)
	}
	if err := RecomputeAverageRating(db, movie.ID); err != nil {
		t.Fatal(err)
	}

	var got models.Content
	db.First(&got, "id = ?", movie.ID)
	if got.Rating != 7 {
		t.Errorf("rating sau recompute lặp = %v, muốn 7", got.Rating)
	}

	// Không còn rating nào thì về 0
	db.Where("content_id = ?", movie.ID).Delete(&models.Rating{})
	if err := RecomputeAverageRating(db, movie.ID); err != nil {
		t.Fatal(err)
	}
	db.First(&got, "id = ?", movie.ID)
	if got.Rating != 0 {
		t.Errorf("rating khi hết đánh giá = %v, muốn 0", got.Rating)
	}
}

func TestIncrementViewCount(t *testing.T) {
	db := newTestDB(t)
	movie := seedContent(t, db, models.Content{Title: "Phim", IsActive: true})

	for i := 0; i < 3; i++ {
		if err := IncrementViewCount(db, movie.ID); err != nil {
			t.Fatalf("increment lần %d: %v", i+1, err)
		}
	}

	var got models.Content
	db.First(&got, "id = ?", movie.ID)
	if got.ViewCount != 3 {
		t.Errorf("view_count = %d, muốn 3", got.ViewCount)
	}

	if err := IncrementViewCount(db, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("content không tồn tại: err = %v, muốn ErrNotFound", err)
	}
}

func TestUpsertWatchProgress(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	movie := seedContent(t, db, models.Content{Title: "Phim", IsActive: true})

	history, err := UpsertWatchProgress(db, alice.ID, movie.ID, nil, 800, 1000)
	if err != nil {
		t.Fatalf("lưu tiến độ: %v", err)
	}
	if history.Completed {
		t.Error("80% chưa được tính là hoàn thành")
	}

	// Lưu tiếp cùng (user, content) thì cập nhật dòng cũ
	history, err = UpsertWatchProgress(db, alice.ID, movie.ID, nil, 950, 1000)
	if err != nil {
		t.Fatalf("cập nhật tiến độ: %v", err)
	}
	if !history.Completed {
		t.Error("95% phải được tính là hoàn thành")
	}

	var count int64
	db.Model(&models.WatchHistory{}).Where("user_id = ?", alice.ID).Count(&count)
	if count != 1 {
		t.Errorf("số bản ghi lịch sử = %d, muốn 1", count)
	}

	// Dòng movie (episode_id NULL) trùng bị partial index chặn ngay tại DB,
	// không chỉ dựa vào check-then-insert của service
	dup := models.WatchHistory{
		UserID:      alice.ID,
		ContentID:   movie.ID,
		WatchTime:   1,
		TotalTime:   10,
		LastWatched: time.Now(),
	}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("insert (user, content, NULL) trùng phải bị index unique từ chối")
	}
}

func TestUpsertWatchProgressEpisode(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	series := seedContent(t, db, models.Content{Title: "Series", ContentType: models.ContentSeries, IsActive: true})
	other := seedContent(t, db, models.Content{Title: "Series khác", ContentType: models.ContentSeries, IsActive: true})

	episode := models.Episode{
		SeriesID:      series.ID,
		Title:         "Tập 1",
		SeasonNumber:  1,
		EpisodeNumber: 1,
		IsActive:      true,
	}
	if err := db.Create(&episode).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := UpsertWatchProgress(db, alice.ID, series.ID, &episode.ID, 100, 1000); err != nil {
		t.Fatalf("lưu tiến độ episode: %v", err)
	}

	// Episode không thuộc series được chỉ định
	if _, err := UpsertWatchProgress(db, alice.ID, other.ID, &episode.ID, 100, 1000); !errors.Is(err, ErrNotFound) {
		t.Errorf("episode sai series: err = %v, muốn ErrNotFound", err)
	}

	// Tập khác của cùng series là một dòng lịch sử riêng
	episode2 := models.Episode{
		SeriesID:      series.ID,
		Title:         "Tập 2",
		SeasonNumber:  1,
		EpisodeNumber: 2,
		IsActive:      true,
	}
	if err := db.Create(&episode2).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := UpsertWatchProgress(db, alice.ID, series.ID, &episode2.ID, 200, 1000); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.WatchHistory{}).Where("user_id = ?", alice.ID).Count(&count)
	if count != 2 {
		t.Errorf("số bản ghi lịch sử = %d, muốn 2", count)
	}
}
