package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/phone_inventory/internal/auth"
	"github.com/phone_inventory/internal/handlers"
)

// SetupPhoneNumberRoutes 设置号码相关路由
func SetupPhoneNumberRoutes(apiV1 *gin.RouterGroup, h *handlers.PhoneNumberHandler) {
	// 已审批用户可读
	phoneGroup := apiV1.Group("/phones")
	phoneGroup.Use(auth.JWTMiddleware(), auth.RequireApproved())
	{
		// GET /api/v1/phones
		phoneGroup.GET("", h.GetPhoneNumbers)
		// GET /api/v1/phones/:id
		phoneGroup.GET("/:id", h.GetPhoneNumberByID)
		// GET /api/v1/phones/:id/history
		phoneGroup.GET("/:id/history", h.GetPhoneNumberHistory)
	}

	// 写操作仅限管理员
	phoneAdminGroup := apiV1.Group("/phones")
	phoneAdminGroup.Use(auth.JWTMiddleware(), auth.RequireApproved(), auth.RequireAdmin())
	{
		// PUT /api/v1/phones/:id：单号分配/回收/换客户
		phoneAdminGroup.PUT("/:id", h.UpdatePhoneNumber)
		// POST /api/v1/phones/bulk：批量状态流转
		phoneAdminGroup.POST("/bulk", h.BulkTransition)
		// PATCH /api/v1/phones/history/:historyId：修正历史事件日期
		phoneAdminGroup.PATCH("/history/:historyId", h.EditHistoryDate)
		// DELETE /api/v1/phones/:id
		phoneAdminGroup.DELETE("/:id", h.DeletePhoneNumber)
	}
}
