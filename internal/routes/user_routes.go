package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/phone_inventory/internal/auth"
	"github.com/phone_inventory/internal/handlers"
)

// SetupUserRoutes 设置用户管理相关路由（仅管理员）
func SetupUserRoutes(apiV1 *gin.RouterGroup, h *handlers.UserHandler) {
	adminGroup := apiV1.Group("/admin/users")
	adminGroup.Use(auth.JWTMiddleware(), auth.RequireApproved(), auth.RequireAdmin())
	{
		// GET /api/v1/admin/users
		adminGroup.GET("", h.ListUsers)
		// PATCH /api/v1/admin/users/:id/role
		adminGroup.PATCH("/:id/role", h.UpdateUserRole)
		// PATCH /api/v1/admin/users/:id/status
		adminGroup.PATCH("/:id/status", h.UpdateUserStatus)
	}
}
