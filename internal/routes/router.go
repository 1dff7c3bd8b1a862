package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/phone_inventory/configs"
	"github.com/phone_inventory/internal/handlers"
)

// Handlers 聚合了各模块的 HTTP 处理器，由 main 构造后注入
type Handlers struct {
	Auth        *handlers.AuthHandler
	PhoneNumber *handlers.PhoneNumberHandler
	Block       *handlers.BlockHandler
	Customer    *handlers.CustomerHandler
	User        *handlers.UserHandler
}

// SetupRoutes 初始化所有路由
func SetupRoutes(router *gin.Engine, h Handlers) {
	// 跨域：只放行配置的前端地址
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{configs.AppConfig.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger 文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	apiV1 := api.Group("/v1")

	SetupAuthRoutes(apiV1, h.Auth)
	SetupPhoneNumberRoutes(apiV1, h.PhoneNumber)
	SetupBlockRoutes(apiV1, h.Block)
	SetupCustomerRoutes(apiV1, h.Customer)
	SetupUserRoutes(apiV1, h.User)
}
