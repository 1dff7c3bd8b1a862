package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/phone_inventory/internal/auth"
	"github.com/phone_inventory/internal/handlers"
)

// SetupCustomerRoutes 设置客户相关路由（只读）
func SetupCustomerRoutes(apiV1 *gin.RouterGroup, h *handlers.CustomerHandler) {
	customerGroup := apiV1.Group("/customers")
	customerGroup.Use(auth.JWTMiddleware(), auth.RequireApproved())
	{
		// GET /api/v1/customers
		customerGroup.GET("", h.ListCustomers)
		// GET /api/v1/customers/phones?client=xxx
		customerGroup.GET("/phones", h.GetCustomerPhones)
	}
}
