package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-note-manager/services"
)

// BackupHandler 管理员数据备份接口，backup 为 nil 表示未配置 S3
type BackupHandler struct {
	backup *services.BackupService
}

func NewBackupHandler(backup *services.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// CreateBackup 打包数据目录上传到 S3
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	if h.backup == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "未配置S3备份",
		})
		return
	}

	key, err := h.backup.CreateBackup(c.Request.Context())
	if err != nil {
		log.Printf("创建备份失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "备份创建成功",
		"key":     key,
	})
}

// TestConnection 检查 S3 配置是否可用
func (h *BackupHandler) TestConnection(c *gin.Context) {
	if h.backup == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "未配置S3备份",
		})
		return
	}

	if err := h.backup.TestConnection(c.Request.Context()); err != nil {
		log.Printf("S3连接测试失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "S3连接测试失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "S3连接正常",
	})
}
