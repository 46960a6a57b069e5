package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vnkhanh/e-stream-backend/utils"
)

func newWSServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/user", HandleUserWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestUserWebSocketHelloThenBadge(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	srv := newWSServer(t)

	userID := uuid.NewString()
	token, err := utils.GenerateToken(userID, "alice", false)
	if err != nil {
		t.Fatal(err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/user?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// Message đầu tiên luôn là hello, handler gửi trước khi đăng ký vào hub
	var hello map[string]interface{}
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("đọc hello: %v", err)
	}
	if hello["type"] != "connected" {
		t.Fatalf("message đầu = %v, muốn type connected", hello)
	}

	// Chờ hub đăng ký xong rồi mới đẩy badge
	deadline := time.Now().Add(2 * time.Second)
	for {
		H.Mutex.RLock()
		registered := len(H.Users[userID]) > 0
		H.Mutex.RUnlock()
		if registered {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("hub chưa đăng ký connection")
		}
		time.Sleep(10 * time.Millisecond)
	}

	SendBadgeUpdate(userID, 3)

	var badge BadgeUpdate
	if err := conn.ReadJSON(&badge); err != nil {
		t.Fatalf("đọc badge: %v", err)
	}
	if badge.Type != "badge_update" || badge.UnreadCount != 3 {
		t.Errorf("badge = %+v, muốn badge_update với unread_count 3", badge)
	}
}

func TestUserWebSocketRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	srv := newWSServer(t)

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/user"
	for _, url := range []string{base, base + "?token=garbage"} {
		if conn, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
			conn.Close()
			t.Errorf("dial %s phải bị từ chối", url)
		}
	}
}
