package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-note-manager/models"
	"study-note-manager/services"
)

// GetHistory 获取最近浏览记录
func (h *DataHandler) GetHistory(c *gin.Context) {
	caller := callerIdentity(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.store.ReadHistory(caller.ID),
	})
}

type SaveHistoryRequest struct {
	History []models.HistoryEntry `json:"history"`
}

// SaveHistory 保存浏览记录，落盘前规整：去重、最多保留 10 条
func (h *DataHandler) SaveHistory(c *gin.Context) {
	caller := callerIdentity(c)

	var req SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.History == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "历史记录数据格式错误",
		})
		return
	}

	if err := h.store.WriteHistory(caller.ID, services.NormalizeHistory(req.History)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "历史记录保存成功",
	})
}
