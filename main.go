package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"study-note-manager/config"
	"study-note-manager/database"
	"study-note-manager/handlers"
	"study-note-manager/middleware"
	"study-note-manager/services"
)

func main() {
	cfg := config.GetConfig()

	// 初始化用户数据库
	database.InitDB()

	// 初始化文件存储
	store, err := services.NewRecordStore(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize record store:", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, 24*time.Hour)

	// S3 备份服务，未配置时跳过
	var backupService *services.BackupService
	if cfg.S3.Bucket != "" {
		backupService, err = services.NewBackupService(cfg.S3, cfg.DataDir)
		if err != nil {
			log.Printf("初始化S3备份服务失败: %v", err)
		}
	}

	authHandler := handlers.NewAuthHandler(database.DB, tokens)
	dataHandler := handlers.NewDataHandler(store)
	backupHandler := handlers.NewBackupHandler(backupService)

	// 创建 Gin 路由
	r := gin.Default()
	r.Use(middleware.Logger())

	// CORS 配置
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// 健康检查
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   "1.0.0",
		})
	})

	// 公开路由
	public := r.Group("/api/auth")
	public.Use(middleware.RateLimit(30))
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
	}

	// 需要认证的账户路由
	auth := r.Group("/api/auth")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.GET("/me", authHandler.GetCurrentUser)

		// 用户管理（管理员）
		users := auth.Group("/users")
		users.Use(middleware.AdminRequired())
		{
			users.GET("", authHandler.ListUsers)
			users.PUT("/:id/status", authHandler.UpdateUserStatus)
			users.DELETE("/:id", authHandler.DeleteUser)
		}
	}

	// 学习数据路由
	data := r.Group("/api/data")
	data.Use(middleware.AuthMiddleware(tokens))
	{
		// 题目管理
		data.GET("/questions", dataHandler.GetQuestions)
		data.POST("/questions", dataHandler.SaveQuestion)
		data.POST("/questions/batch", dataHandler.BatchSaveQuestions)
		data.DELETE("/questions/:id", dataHandler.DeleteQuestion)

		// 历史记录和标签
		data.GET("/history", dataHandler.GetHistory)
		data.POST("/history", dataHandler.SaveHistory)
		data.GET("/tags", dataHandler.GetTags)
		data.POST("/tags", dataHandler.SaveTags)

		// 批注
		data.GET("/annotations/:questionId", dataHandler.GetAnnotations)
		data.POST("/annotations/:questionId", dataHandler.SaveAnnotations)

		// 数据同步
		data.POST("/sync/upload", dataHandler.SyncUpload)
		data.GET("/sync/download", dataHandler.SyncDownload)

		// 统计
		data.GET("/stats", dataHandler.GetStats)

		// 管理员功能
		admin := data.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/admin/questions", dataHandler.AdminGetAllQuestions)
			admin.GET("/categories", dataHandler.GetCategories)
			admin.POST("/categories", dataHandler.SaveCategories)
			admin.POST("/admin/backup", backupHandler.CreateBackup)
			admin.GET("/admin/backup/test", backupHandler.TestConnection)
		}
	}

	// 启动服务器
	port := cfg.ServerPort
	log.Printf("申论行测学习系统已启动，端口: %s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
