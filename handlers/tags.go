package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTags 获取标签列表，分区不存在时返回默认标签
func (h *DataHandler) GetTags(c *gin.Context) {
	caller := callerIdentity(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.store.ReadTags(caller.ID),
	})
}

type SaveTagsRequest struct {
	Tags []string `json:"tags"`
}

// SaveTags 整体替换标签列表
func (h *DataHandler) SaveTags(c *gin.Context) {
	caller := callerIdentity(c)

	var req SaveTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tags == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "标签数据格式错误",
		})
		return
	}

	if err := h.store.WriteTags(caller.ID, req.Tags); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "标签保存成功",
	})
}
