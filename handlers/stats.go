package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStats 当前用户的数据统计：题目/历史/标签总数和分类分布
func (h *DataHandler) GetStats(c *gin.Context) {
	caller := callerIdentity(c)

	questions := h.store.ReadQuestions(caller.ID)
	history := h.store.ReadHistory(caller.ID)
	tags := h.store.ReadTags(caller.ID)

	categoryStats := make(map[string]map[string]int)
	var lastUpdated string
	var lastUpdatedTime time.Time

	for _, q := range questions {
		if categoryStats[q.Category] == nil {
			categoryStats[q.Category] = make(map[string]int)
		}
		categoryStats[q.Category][q.Subcategory]++

		stamp := q.UpdatedAt
		if stamp == "" {
			stamp = q.CreatedAt
		}
		if t, err := time.Parse(time.RFC3339, stamp); err == nil && t.After(lastUpdatedTime) {
			lastUpdatedTime = t
			lastUpdated = stamp
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"totalQuestions": len(questions),
		"totalHistory":   len(history),
		"totalTags":      len(tags),
		"categoryStats":  categoryStats,
		"lastUpdated":    lastUpdated,
	})
}
