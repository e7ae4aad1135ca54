package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"study-note-manager/models"
	"study-note-manager/services"
)

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// GetQuestions 获取当前用户的题目列表
func (h *DataHandler) GetQuestions(c *gin.Context) {
	caller := callerIdentity(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.store.ReadQuestions(caller.ID),
	})
}

type SaveQuestionRequest struct {
	Question models.Question `json:"question"`
}

// SaveQuestion 保存单个题目：已存在则按权限更新，否则作为新题目追加。
// 更新时 createdBy 和 createdAt 保持原值，不接受客户端改写。
func (h *DataHandler) SaveQuestion(c *gin.Context) {
	caller := callerIdentity(c)

	var req SaveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "题目数据不完整",
		})
		return
	}
	question := req.Question

	denied := false // 区分权限拒绝和存储错误
	err := h.store.UpdateQuestions(caller.ID, func(questions []models.Question) ([]models.Question, error) {
		for i, existing := range questions {
			if existing.ID != question.ID || question.ID == "" {
				continue
			}
			if !services.CanEdit(caller, existing) {
				denied = true
				return nil, fmt.Errorf("permission denied")
			}
			// 更新现有题目，所有权字段不可变
			question.CreatedBy = existing.CreatedBy
			question.CreatedAt = existing.CreatedAt
			question.UpdatedAt = nowISO()
			questions[i] = question
			return questions, nil
		}

		// 添加新题目
		if question.ID == "" {
			question.ID = fmt.Sprintf("q_%d", time.Now().UnixMilli())
		}
		if question.CreatedAt == "" {
			question.CreatedAt = nowISO()
		}
		question.UpdatedAt = nowISO()
		question.CreatedBy = caller.ID
		return append(questions, question), nil
	})

	if denied {
		c.JSON(http.StatusForbidden, gin.H{
			"success":     false,
			"message":     "您没有权限修改此题目",
			"questionId": question.ID,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "题目保存成功",
		"question": question,
	})
}

type BatchSaveRequest struct {
	Questions []models.Question `json:"questions"`
}

// BatchSaveQuestions 批量保存：先对每条已存在的记录做权限检查，
// 任何一条不通过时整批拒绝，不做部分写入
func (h *DataHandler) BatchSaveQuestions(c *gin.Context) {
	caller := callerIdentity(c)

	var req BatchSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Questions == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "题目数据格式错误",
		})
		return
	}

	var deniedID string
	err := h.store.UpdateQuestions(caller.ID, func(existing []models.Question) ([]models.Question, error) {
		byID := make(map[string]models.Question, len(existing))
		for _, q := range existing {
			byID[q.ID] = q
		}

		// 全部检查通过之前不提交任何写入
		for _, q := range req.Questions {
			if q.ID == "" {
				continue
			}
			if prev, ok := byID[q.ID]; ok && !services.CanEdit(caller, prev) {
				deniedID = q.ID
				return nil, fmt.Errorf("permission denied")
			}
		}

		submitted := make([]models.Question, len(req.Questions))
		for i, q := range req.Questions {
			if prev, ok := byID[q.ID]; ok && q.ID != "" {
				q.CreatedBy = prev.CreatedBy
				q.CreatedAt = prev.CreatedAt
			} else {
				if q.ID == "" {
					q.ID = fmt.Sprintf("q_%d_%d", time.Now().UnixMilli(), i)
				}
				q.CreatedBy = caller.ID
				if q.CreatedAt == "" {
					q.CreatedAt = nowISO()
				}
			}
			q.UpdatedAt = nowISO()
			submitted[i] = q
		}
		return submitted, nil
	})

	if deniedID != "" {
		c.JSON(http.StatusForbidden, gin.H{
			"success":     false,
			"message":     "您没有权限修改此题目",
			"questionId": deniedID,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "题目批量保存成功",
		"count":   len(req.Questions),
	})
}

// DeleteQuestion 删除题目。普通用户只能删除自己分区内有权限的题目；
// 管理员可以删除任何用户的题目，并从所有分区清除
func (h *DataHandler) DeleteQuestion(c *gin.Context) {
	caller := callerIdentity(c)
	questionID := c.Param("id")

	// 先在调用者自己的分区查找
	var target *models.Question
	for _, q := range h.store.ReadQuestions(caller.ID) {
		if q.ID == questionID {
			found := q
			target = &found
			break
		}
	}

	// 管理员可跨分区查找
	if target == nil && caller.IsAdmin() {
		for _, q := range h.store.AllQuestions() {
			if q.ID == questionID {
				found := q
				target = &found
				break
			}
		}
	}

	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "题目不存在",
		})
		return
	}

	if !services.CanDelete(caller, *target) {
		c.JSON(http.StatusForbidden, gin.H{
			"success":     false,
			"message":     "您没有权限删除此题目",
			"questionId": questionID,
		})
		return
	}

	if caller.IsAdmin() {
		// 管理员删除时从所有用户分区中清除
		h.store.DeleteQuestionEverywhere(questionID)
	} else {
		err := h.store.UpdateQuestions(caller.ID, func(questions []models.Question) ([]models.Question, error) {
			filtered := questions[:0]
			for _, q := range questions {
				if q.ID != questionID {
					filtered = append(filtered, q)
				}
			}
			return filtered, nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "服务器内部错误",
			})
			return
		}
		// 删除相关批注，文件可能不存在
		_ = h.store.DeleteAnnotations(caller.ID, questionID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "题目删除成功",
	})
}

// AdminGetAllQuestions 管理员聚合视图，每条记录带来源分区的 ownerId
func (h *DataHandler) AdminGetAllQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.store.AllQuestions(),
	})
}
