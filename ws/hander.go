package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vnkhanh/e-stream-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // chỉ để phát triển, nên giới hạn ở production
	},
}

// gửi message dạng JSON qua WebSocket
func sendJSON(conn *websocket.Conn, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("Lỗi JSON marshal:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("Lỗi gửi message:", err)
	}
}

// WebSocket riêng cho user (badge thông báo, tập mới...)
func HandleUserWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Thiếu token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
		return
	}

	userID := claims.UserID
	log.Printf("User WS connected: userID=%s\n", userID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade thất bại:", err)
		return
	}
	// Gửi hello trước khi đăng ký: sau khi writePump chạy thì mọi chiều ghi
	// phải đi qua channel Send, không được ghi thẳng vào conn nữa
	sendJSON(conn, gin.H{"type": "connected", "message": "Connected to user WebSocket"})

	H.RegisterUser(userID, conn)
	defer H.UnregisterUser(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("User WS disconnected: userID=%s\n", userID)
	conn.Close()
}

// WebSocket cho global (trạng thái hệ thống)
func HandleGlobalWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade thất bại:", err)
		return
	}
	sendJSON(conn, gin.H{"type": "connected", "message": "Connected to global WebSocket"})

	H.RegisterGlobal(conn)
	defer H.UnregisterGlobal(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	conn.Close()
}
