package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phone_inventory/internal/models"
)

// RequireApproved 要求调用者已通过管理员审批。
// 必须挂在 JWTMiddleware 之后，依赖其写入上下文的 status。
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.GetString("status")
		if status != string(models.UserStatusApproved) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "账号尚未通过审批"})
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求调用者具有管理员角色。
// 必须挂在 JWTMiddleware 之后，依赖其写入上下文的 role。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "仅管理员可执行此操作"})
			return
		}
		c.Next()
	}
}
