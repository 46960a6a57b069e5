package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/auth/credentials/idtoken"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vnkhanh/e-stream-backend/config"
	"github.com/vnkhanh/e-stream-backend/models"
	"github.com/vnkhanh/e-stream-backend/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"` // username hoặc email
	Password string `json:"password" binding:"required"`
}

// Mật khẩu tối thiểu 8 ký tự, có hoa, thường và số
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func publicUser(user models.User) gin.H {
	return gin.H{
		"id":                user.ID,
		"username":          user.Username,
		"email":             user.Email,
		"is_admin":          user.IsAdmin,
		"is_active":         user.IsActive,
		"subscription_type": user.Subscription,
		"created_at":        user.CreatedAt,
		"last_login":        user.LastLogin,
	}
}

// ====== HANDLERS ======
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if !validPassword(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mật khẩu phải có ít nhất 8 ký tự gồm chữ hoa, chữ thường và số"})
		return
	}

	// Check username / email tồn tại
	var existing models.User
	if err := config.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username đã được sử dụng"})
		return
	}
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email đã được sử dụng"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể mã hoá mật khẩu"})
		return
	}

	newUser := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tạo người dùng"})
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), newUser.Username, newUser.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo token"})
		return
	}

	// Gửi email chào mừng (không chặn luồng)
	go func(to, name string) {
		subject := "Chào mừng bạn đến với E-Stream"
		body := `
		<h3>Xin chào ` + name + `,</h3>
		<p>Tài khoản của bạn trên <b>E-Stream</b> đã được tạo thành công.</p>
		<p>Chúc bạn xem phim vui vẻ!</p>
		<hr>
		<p><i>Đây là email tự động, vui lòng không trả lời.</i></p>
		`
		if err := utils.SendEmail(to, subject, body); err != nil {
			println("Lỗi gửi email:", err.Error())
		}
	}(newUser.Email, newUser.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Đăng ký thành công",
		"token":   token,
		"user":    publicUser(newUser),
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Username)

	var user models.User
	if err := config.DB.Where("username = ? OR email = ?", name, strings.ToLower(name)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tên đăng nhập hoặc mật khẩu không đúng"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tên đăng nhập hoặc mật khẩu không đúng"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tài khoản đã bị tạm khóa"})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	config.DB.Model(&user).UpdateColumn("last_login", now)

	token, err := utils.GenerateToken(user.ID.String(), user.Username, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Đăng nhập thành công",
		"token":   token,
		"user":    publicUser(user),
	})
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

func GoogleLogin(c *gin.Context) {
	var input GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Xác minh token với đúng GOOGLE_CLIENT_ID
	payload, err := idtoken.Validate(c, input.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token Google không hợp lệ"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	// Tìm user trong DB, chưa có thì tạo mới
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		user = models.User{
			ID:       uuid.New(),
			Email:    email,
			Username: name,
			IsActive: true,
			// PasswordHash để trống vì login Google
		}
		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo user Google"})
			return
		}
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Tài khoản đã bị tạm khóa"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Username, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	c.JSON(http.StatusOK, publicUser(user))
}

type UpdateProfileInput struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username phải có ít nhất 3 ký tự"})
			return
		}
		// Username bị user khác dùng rồi thì từ chối
		var existing models.User
		if err := config.DB.Where("username = ?", username).First(&existing).Error; err == nil && existing.ID != user.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Username đã được sử dụng"})
			return
		}
		user.Username = username
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		var existing models.User
		if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil && existing.ID != user.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Email đã được sử dụng"})
			return
		}
		user.Email = email
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi cập nhật hồ sơ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật hồ sơ thành công",
		"user":    publicUser(user),
	})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func ChangePassword(c *gin.Context) {
	db := config.DB
	userID := c.GetString("user_id")

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Người dùng không tồn tại"})
		return
	}

	// Kiểm tra mật khẩu cũ
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mật khẩu hiện tại không đúng"})
		return
	}

	if !validPassword(input.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mật khẩu mới phải có ít nhất 8 ký tự gồm chữ hoa, chữ thường và số"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể mã hoá mật khẩu mới"})
		return
	}

	user.PasswordHash = string(hashed)
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi cập nhật mật khẩu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Đổi mật khẩu thành công",
	})
}

type VerifyTokenInput struct {
	Token string `json:"token" binding:"required"`
}

// Cho client kiểm tra token còn dùng được không
func VerifyToken(c *gin.Context) {
	var input VerifyTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	claims, err := utils.VerifyToken(input.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  publicUser(user),
	})
}
