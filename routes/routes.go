package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-stream-backend/controllers"
	"github.com/vnkhanh/e-stream-backend/middleware"
	"github.com/vnkhanh/e-stream-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/verify-token", controllers.VerifyToken)
		auth.GET("/profile", middleware.AuthMiddleware(db), controllers.GetProfile)
		auth.PUT("/profile", middleware.AuthMiddleware(db), controllers.UpdateProfile)
		auth.PUT("/change-password", middleware.AuthMiddleware(db), controllers.ChangePassword)
	}

	// Route public: duyệt catalog không cần đăng nhập
	public := api.Group("")
	{
		public.Use(middleware.DBMiddleware(db))
		public.GET("/content", controllers.GetContents)
		public.GET("/content/:id", controllers.GetContentDetail)
		public.GET("/content/:id/episodes", controllers.GetEpisodes)
		public.GET("/content/:id/ratings", controllers.GetContentRatings)
		public.GET("/content/:id/comments", controllers.GetComments)
		public.GET("/genres", controllers.GetGenres)
		public.GET("/search", controllers.SearchContent)
	}

	user := api.Group("")
	{
		user.Use(middleware.AuthMiddleware(db), middleware.DBMiddleware(db))

		// Đánh giá
		user.POST("/content/:id/rate", controllers.RateContent)
		user.GET("/content/:id/my-rating", controllers.GetUserRating)

		// Bình luận
		user.POST("/content/:id/comments", controllers.CreateComment)
		user.PUT("/comments/:id", controllers.UpdateComment)
		user.DELETE("/comments/:id", controllers.DeleteComment)

		// Lịch sử xem
		user.POST("/watch-history", controllers.SaveWatchHistory)
		user.GET("/watch-history", controllers.GetWatchHistory)
		user.DELETE("/watch-history/:content_id", controllers.DeleteWatchHistory)
		user.DELETE("/watch-history", controllers.ClearWatchHistory)

		// Yêu thích
		user.POST("/favorites", controllers.AddFavorite)
		user.GET("/favorites", controllers.GetFavorites)
		user.DELETE("/favorites/:content_id", controllers.RemoveFavorite)
		user.GET("/favorites/:content_id/check", controllers.CheckFavorite)

		// Gợi ý
		user.GET("/recommendations", controllers.GetRecommendations)

		// Thông báo
		user.GET("/notifications", controllers.GetNotifications)
		user.GET("/notifications/unread-count", controllers.GetUnreadCount)
		user.PUT("/notifications/:id/read", controllers.MarkNotificationAsRead)
		user.PUT("/notifications/read-all", controllers.MarkAllAsRead)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(db), middleware.DBMiddleware(db), middleware.RequireAdmin())

		admin.GET("/dashboard/stats", controllers.GetDashboardStats)

		// Quản lý user
		admin.GET("/users", controllers.GetAllUsers)
		admin.GET("/users/:id", controllers.GetUserDetail)
		admin.PATCH("/users/:id/toggle-status", controllers.ToggleUserStatus)
		admin.PATCH("/users/:id/make-admin", controllers.MakeUserAdmin)

		// Quản lý content
		admin.POST("/content", controllers.CreateContent)
		admin.PUT("/content/:id", controllers.UpdateContent)
		admin.DELETE("/content/:id", controllers.DeleteContent)
		admin.POST("/content/:id/cover", controllers.UploadContentCover)
		admin.GET("/content/all", controllers.GetAllContent)
		admin.PATCH("/content/:id/toggle-status", controllers.ToggleContentStatus)
		admin.PATCH("/content/:id/toggle-featured", controllers.ToggleContentFeatured)
		admin.POST("/content/bulk-update", controllers.BulkUpdateContent)

		// Quản lý episode
		admin.POST("/content/:id/episodes", controllers.CreateEpisode)

		// Quản lý genre
		admin.POST("/genres", controllers.CreateGenre)

		// Kiểm duyệt bình luận
		admin.GET("/comments", controllers.GetAllComments)
		admin.PATCH("/comments/:id/toggle-status", controllers.ToggleCommentStatus)

		// Thống kê
		admin.GET("/analytics/content-views", controllers.GetContentAnalytics)
	}

	r.GET("/ws/user", ws.HandleUserWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}
