package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-note-manager/models"
)

// GetAnnotations 获取某个题目的批注，文件不存在时返回空对象
func (h *DataHandler) GetAnnotations(c *gin.Context) {
	caller := callerIdentity(c)
	questionID := c.Param("questionId")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.store.ReadAnnotations(caller.ID, questionID),
	})
}

type SaveAnnotationsRequest struct {
	Annotations models.AnnotationSet `json:"annotations"`
}

// SaveAnnotations 整体替换某个题目的批注文件
func (h *DataHandler) SaveAnnotations(c *gin.Context) {
	caller := callerIdentity(c)
	questionID := c.Param("questionId")

	var req SaveAnnotationsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Annotations == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "批注数据格式错误",
		})
		return
	}

	if err := h.store.WriteAnnotations(caller.ID, questionID, req.Annotations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "批注保存成功",
	})
}
