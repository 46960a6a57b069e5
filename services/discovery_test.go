package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vnkhanh/e-stream-backend/models"
)

func TestListContentFilters(t *testing.T) {
	db := newTestDB(t)

	action := models.Genre{Name: "Hành động"}
	drama := models.Genre{Name: "Tâm lý"}
	if err := db.Create(&action).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&drama).Error; err != nil {
		t.Fatal(err)
	}

	seedContent(t, db, models.Content{Title: "Phim hành động", ContentType: models.ContentMovie, IsActive: true, IsFeatured: true, Genres: []models.Genre{action}})
	seedContent(t, db, models.Content{Title: "Series tâm lý", ContentType: models.ContentSeries, IsActive: true, Genres: []models.Genre{drama}})
	seedContent(t, db, models.Content{Title: "Phim bị ẩn", ContentType: models.ContentMovie, IsActive: false, Genres: []models.Genre{action}})

	t.Run("chỉ trả content active", func(t *testing.T) {
		items, total, err := ListContent(db, &ContentFilter{})
		if err != nil {
			t.Fatal(err)
		}
		if total != 2 || len(items) != 2 {
			t.Errorf("total = %d, len = %d, muốn 2 và 2", total, len(items))
		}
	})

	t.Run("lọc theo loại", func(t *testing.T) {
		items, _, err := ListContent(db, &ContentFilter{ContentType: "series"})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].Title != "Series tâm lý" {
			t.Errorf("lọc series trả về %d item", len(items))
		}
	})

	t.Run("lọc theo genre", func(t *testing.T) {
		items, _, err := ListContent(db, &ContentFilter{GenreID: &action.ID})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].Title != "Phim hành động" {
			t.Errorf("lọc genre hành động trả về %d item", len(items))
		}
	})

	t.Run("tìm kiếm không phân biệt hoa thường", func(t *testing.T) {
		items, _, err := ListContent(db, &ContentFilter{Search: "HÀNH ĐỘNG"})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 {
			t.Errorf("search trả về %d item, muốn 1", len(items))
		}
	})

	t.Run("featured=false là filter thật", func(t *testing.T) {
		notFeatured := false
		items, _, err := ListContent(db, &ContentFilter{Featured: &notFeatured})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].Title != "Series tâm lý" {
			t.Errorf("featured=false trả về %d item", len(items))
		}

		featured := true
		items, _, err = ListContent(db, &ContentFilter{Featured: &featured})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].Title != "Phim hành động" {
			t.Errorf("featured=true trả về %d item", len(items))
		}
	})

	t.Run("sort key ngoài whitelist không gây lỗi", func(t *testing.T) {
		_, _, err := ListContent(db, &ContentFilter{SortBy: "password_hash; DROP TABLE users"})
		if err != nil {
			t.Fatalf("sort key lạ phải rơi về mặc định, got %v", err)
		}
	})
}

func TestListContentPagination(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 120; i++ {
		seedContent(t, db, models.Content{Title: fmt.Sprintf("Phim %03d", i), IsActive: true})
	}

	// per_page vượt trần thì kẹp về 100, giá trị kẹp ghi ngược vào filter
	filter := ContentFilter{PerPage: 500}
	items, total, err := ListContent(db, &filter)
	if err != nil {
		t.Fatal(err)
	}
	if total != 120 {
		t.Errorf("total = %d, muốn 120", total)
	}
	if len(items) != 100 {
		t.Errorf("per_page=500 trả về %d item, muốn kẹp ở 100", len(items))
	}
	if filter.Page != 1 || filter.PerPage != 100 {
		t.Errorf("filter sau khi kẹp = (page %d, per_page %d), muốn (1, 100)", filter.Page, filter.PerPage)
	}

	// page/per_page không hợp lệ thì về mặc định
	filter = ContentFilter{Page: -3, PerPage: -1}
	items, _, err = ListContent(db, &filter)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 20 {
		t.Errorf("mặc định trả về %d item, muốn 20", len(items))
	}
	if filter.Page != 1 || filter.PerPage != 20 {
		t.Errorf("filter sau khi kẹp = (page %d, per_page %d), muốn (1, 20)", filter.Page, filter.PerPage)
	}

	// Trang cuối
	items, _, err = ListContent(db, &ContentFilter{Page: 2, PerPage: 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 20 {
		t.Errorf("trang 2 trả về %d item, muốn 20", len(items))
	}
}

func TestSearchContent(t *testing.T) {
	db := newTestDB(t)

	if _, err := SearchContent(db, "   "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("query rỗng: err = %v, muốn ErrInvalidArgument", err)
	}

	seedContent(t, db, models.Content{Title: "Biển xanh", Director: "Trần Văn A", IsActive: true, ViewCount: 5})
	seedContent(t, db, models.Content{Title: "Núi cao", Cast: "Trần Văn A, Lê B", IsActive: true, ViewCount: 50})
	seedContent(t, db, models.Content{Title: "Biển đêm", IsActive: false})

	items, err := SearchContent(db, "trần văn a")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("search director/cast trả về %d item, muốn 2", len(items))
	}
	// Xếp theo lượt xem giảm dần
	if items[0].Title != "Núi cao" {
		t.Errorf("item đầu = %q, muốn %q", items[0].Title, "Núi cao")
	}

	// Content inactive không bao giờ xuất hiện
	items, err = SearchContent(db, "biển")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "Biển xanh" {
		t.Errorf("search 'biển' trả về %d item", len(items))
	}

	// Trần 20 kết quả
	for i := 0; i < 25; i++ {
		seedContent(t, db, models.Content{Title: fmt.Sprintf("Chung tên %d", i), IsActive: true})
	}
	items, err = SearchContent(db, "chung tên")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 20 {
		t.Errorf("search trả về %d item, muốn trần 20", len(items))
	}
}

func TestRecommend(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")

	action := models.Genre{Name: "Hành động"}
	comedy := models.Genre{Name: "Hài"}
	if err := db.Create(&action).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&comedy).Error; err != nil {
		t.Fatal(err)
	}

	watched := seedContent(t, db, models.Content{Title: "Đã xem", IsActive: true, Genres: []models.Genre{action}})
	sameGenre := seedContent(t, db, models.Content{Title: "Cùng genre", IsActive: true, Rating: 8, Genres: []models.Genre{action}})
	sameGenreLow := seedContent(t, db, models.Content{Title: "Cùng genre điểm thấp", IsActive: true, Rating: 5, Genres: []models.Genre{action}})
	seedContent(t, db, models.Content{Title: "Genre khác", IsActive: true, Rating: 9, Genres: []models.Genre{comedy}})
	seedContent(t, db, models.Content{Title: "Cùng genre nhưng ẩn", IsActive: false, Genres: []models.Genre{action}})

	if _, err := UpsertWatchProgress(db, alice.ID, watched.ID, nil, 100, 1000); err != nil {
		t.Fatal(err)
	}

	items, err := Recommend(db, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("gợi ý trả về %d item, muốn 2", len(items))
	}
	// Điểm cao đứng trước, content đã xem và inactive bị loại
	if items[0].ID != sameGenre.ID || items[1].ID != sameGenreLow.ID {
		t.Errorf("thứ tự gợi ý = [%s, %s]", items[0].Title, items[1].Title)
	}

	// Cold start: user chưa xem gì thì rơi về top toàn cục
	bob := seedUser(t, db, "bob")
	items, err = Recommend(db, bob.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Errorf("cold start trả về %d item, muốn 4 (toàn bộ catalog active)", len(items))
	}
	if len(items) > 0 && items[0].Title != "Genre khác" {
		t.Errorf("cold start item đầu = %q, muốn content điểm cao nhất", items[0].Title)
	}
}
