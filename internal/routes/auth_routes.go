package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/phone_inventory/internal/auth"
	"github.com/phone_inventory/internal/handlers"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(apiV1 *gin.RouterGroup, h *handlers.AuthHandler) {
	// 公共认证路由组 (登录不需要本服务的JWT)
	publicAuthGroup := apiV1.Group("/auth")
	{
		// POST /api/v1/auth/login
		publicAuthGroup.POST("/login", h.Login)
	}

	// 受保护的认证路由组
	protectedAuthGroup := apiV1.Group("/auth")
	protectedAuthGroup.Use(auth.JWTMiddleware())
	{
		// POST /api/v1/auth/logout：未过审的用户也允许退出
		protectedAuthGroup.POST("/logout", h.Logout)
		// GET /api/v1/auth/me：未过审的用户需要能看到自己的审批状态
		protectedAuthGroup.GET("/me", h.Me)
	}
}
