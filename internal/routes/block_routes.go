package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/phone_inventory/internal/auth"
	"github.com/phone_inventory/internal/handlers"
)

// SetupBlockRoutes 设置号段相关路由
func SetupBlockRoutes(apiV1 *gin.RouterGroup, h *handlers.BlockHandler) {
	// 已审批用户可读
	blockGroup := apiV1.Group("/blocks")
	blockGroup.Use(auth.JWTMiddleware(), auth.RequireApproved())
	{
		// GET /api/v1/blocks
		blockGroup.GET("", h.ListBlocks)
	}

	// 写操作仅限管理员
	blockAdminGroup := apiV1.Group("/blocks")
	blockAdminGroup.Use(auth.JWTMiddleware(), auth.RequireApproved(), auth.RequireAdmin())
	{
		// POST /api/v1/blocks/generate：批量生成号码
		blockAdminGroup.POST("/generate", h.Generate)
		// PUT /api/v1/blocks/activation：设置整段开通日期
		blockAdminGroup.PUT("/activation", h.SetActivationDate)
		// DELETE /api/v1/blocks/:prefix：删除整段号码
		blockAdminGroup.DELETE("/:prefix", h.DeleteBlock)
	}
}
