package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin chạy sau AuthMiddleware: đã xác thực nhưng không phải admin
// thì trả 403 (phân biệt với 401 chưa xác thực).
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Chỉ admin mới có quyền truy cập"})
			c.Abort()
			return
		}
		c.Next()
	}
}
