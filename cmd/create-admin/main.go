// 创建新管理员账户脚本
// 使用方法: create-admin <用户名> <邮箱> <密码>
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"study-note-manager/config"
	"study-note-manager/database"
	"study-note-manager/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func main() {
	if len(os.Args) != 4 {
		fmt.Println("使用方法: create-admin <用户名> <邮箱> <密码>")
		os.Exit(1)
	}
	username, email, password := os.Args[1], os.Args[2], os.Args[3]

	if len(password) < 6 {
		log.Fatal("密码长度至少6位")
	}
	if !emailRegex.MatchString(email) {
		log.Fatal("邮箱格式不正确")
	}

	db, err := database.Open(config.GetConfig().DBPath)
	if err != nil {
		log.Fatal("打开数据库失败:", err)
	}

	var existing models.User
	if err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		log.Fatal("用户名或邮箱已存在")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("密码加密失败:", err)
	}

	admin := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Password: string(hashed),
		Email:    email,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	fmt.Printf("管理员账户创建成功: %s (%s)\n", username, email)
}
