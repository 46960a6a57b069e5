package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Users         map[string]map[*websocket.Conn]*Client // theo từng userID
	GlobalClients map[*websocket.Conn]*Client            // dành cho broadcast chung
	Mutex         sync.RWMutex
}

var H = Hub{
	Users:         make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// Struct gửi số thông báo chưa đọc của một user
type BadgeUpdate struct {
	Type        string `json:"type"`
	UnreadCount int64  `json:"unread_count"`
}

// Register theo userID riêng
func (h *Hub) RegisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Users[userID]; !ok {
		h.Users[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Users[userID][conn] = client

	// Handler là reader duy nhất của conn, hub chỉ lo chiều ghi
	go h.writePump(client)
}

// Register global cho trang danh sách
func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.GlobalClients[conn] = client

	go h.writePump(client)
}

// BroadcastToUser gửi tới mọi kết nối của một user
func (h *Hub) BroadcastToUser(userID string, messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Users[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// Broadcast toàn bộ global clients
func (h *Hub) BroadcastGlobal(messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendBadgeUpdate đẩy số thông báo chưa đọc xuống client của user
func SendBadgeUpdate(userID string, unreadCount int64) {
	update := BadgeUpdate{
		Type:        "badge_update",
		UnreadCount: unreadCount,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.BroadcastToUser(userID, websocket.TextMessage, data)
}

// UnregisterUser gỡ một kết nối của user
func (h *Hub) UnregisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Users[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Users, userID)
		}
	}
}

// Unregister global client
func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// Write pump: chạy tới khi Send bị đóng lúc unregister
func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
