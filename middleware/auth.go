package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"study-note-manager/services"
)

// AuthMiddleware JWT 认证中间件
// 缺少令牌返回 401，令牌无效或过期返回 403
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "访问令牌缺失",
			})
			c.Abort()
			return
		}

		// 提取 token
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "认证令牌格式错误",
			})
			c.Abort()
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "令牌无效或已过期",
			})
			c.Abort()
			return
		}

		c.Set("user_id", identity.ID)
		c.Set("username", identity.Username)
		c.Set("role", identity.Role)

		c.Next()
	}
}

// AdminRequired 管理员权限中间件
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "需要管理员权限",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
