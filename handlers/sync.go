package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-note-manager/models"
	"study-note-manager/services"
)

// SyncUpload 客户端快照上传，提交的字段整体覆盖对应分区
func (h *DataHandler) SyncUpload(c *gin.Context) {
	caller := callerIdentity(c)

	var payload models.SyncPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "同步数据格式错误",
		})
		return
	}

	timestamp, err := h.sync.Upload(caller.ID, payload)
	if err != nil {
		var conflict *services.SyncConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{
				"success":  false,
				"message":  conflict.Error(),
				"snapshot": conflict.Snapshot,
			})
			return
		}
		log.Printf("数据同步错误: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "数据同步成功",
		"timestamp": timestamp,
	})
}

// SyncDownload 下载当前用户的完整快照
func (h *DataHandler) SyncDownload(c *gin.Context) {
	caller := callerIdentity(c)
	snapshot := h.sync.Download(caller.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"questions":   snapshot.Questions,
		"history":     snapshot.History,
		"tags":        snapshot.Tags,
		"annotations": snapshot.Annotations,
		"timestamp":   snapshot.Timestamp,
	})
}
