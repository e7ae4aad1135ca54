package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"study-note-manager/config"
	"study-note-manager/models"
)

var DB *gorm.DB

// InitDB 初始化数据库
func InitDB() {
	var err error

	DB, err = Open(config.GetConfig().DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Printf("Database initialized successfully at: %s", config.GetConfig().DBPath)
}

// Open 打开指定路径的用户数据库并迁移表结构
func Open(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, err
	}

	if err := ensureDefaultAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureDefaultAdmin 用户表为空时创建默认管理员账户 admin/admin123
func ensureDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:        "admin_001",
		Username:  "admin",
		Password:  string(hashed),
		Email:     "admin@study.com",
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("已创建默认管理员账户: admin/admin123")
	return nil
}
