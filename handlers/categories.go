package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-note-manager/models"
)

// GetCategories 获取分类配置（管理员功能），不存在时返回默认分类
func (h *DataHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.store.ReadCategories(),
	})
}

type SaveCategoriesRequest struct {
	Categories map[string]models.Category `json:"categories"`
}

// SaveCategories 保存分类配置（管理员功能）
func (h *DataHandler) SaveCategories(c *gin.Context) {
	caller := callerIdentity(c)

	var req SaveCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Categories == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "分类数据格式错误",
		})
		return
	}

	if err := h.store.WriteCategories(req.Categories, caller.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "分类配置保存成功",
	})
}
