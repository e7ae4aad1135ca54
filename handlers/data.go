package handlers

import (
	"github.com/gin-gonic/gin"

	"study-note-manager/services"
)

// DataHandler 学习数据相关接口：题目、历史、标签、批注、同步、分类
type DataHandler struct {
	store *services.RecordStore
	sync  *services.SyncService
}

func NewDataHandler(store *services.RecordStore) *DataHandler {
	return &DataHandler{
		store: store,
		sync:  services.NewSyncService(store),
	}
}

// callerIdentity 从认证中间件写入的上下文取出调用者身份
func callerIdentity(c *gin.Context) services.Identity {
	return services.Identity{
		ID:       c.GetString("user_id"),
		Username: c.GetString("username"),
		Role:     c.GetString("role"),
	}
}
