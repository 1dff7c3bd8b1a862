package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/phone_inventory/configs"
	_ "github.com/phone_inventory/docs" // swagger 文档
	"github.com/phone_inventory/internal/handlers"
	"github.com/phone_inventory/internal/repositories"
	"github.com/phone_inventory/internal/routes"
	"github.com/phone_inventory/internal/services"
	"github.com/phone_inventory/pkg/db"
	"github.com/phone_inventory/pkg/idp"
)

// @title 号码资源管理系统 API
// @version 1.0
// @description 电话号码库存管理：号码状态流转、使用历史、号段统计与批量生成、客户视图、用户审批。
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 本地开发时从 .env 读取环境变量，文件不存在不是错误
	if err := godotenv.Load(); err != nil {
		log.Println("信息: 未找到 .env 文件，使用进程环境变量。")
	}

	// 加载应用配置
	configs.LoadConfig()

	// 初始化数据库连接
	db.InitDB()        // 从 pkg/db 调用 InitDB
	defer db.CloseDB() // 确保在 main 函数退出时关闭数据库连接

	gormDB := db.GetDB()

	// 仓库层
	phoneRepo := repositories.NewGormPhoneNumberRepository(gormDB)
	historyRepo := repositories.NewGormUsageHistoryRepository(gormDB)
	userRepo := repositories.NewGormUserRepository(gormDB)

	// 服务层
	phoneService := services.NewPhoneNumberService(phoneRepo, historyRepo)
	blockService := services.NewBlockService(phoneRepo, historyRepo)
	customerService := services.NewCustomerService(phoneRepo)
	userService := services.NewUserService(userRepo)

	// 身份提供方客户端
	idpClient := idp.NewClient(configs.AppConfig.IdPBaseURL)

	router := gin.Default()

	// 设置API路由
	routes.SetupRoutes(router, routes.Handlers{
		Auth:        handlers.NewAuthHandler(userService, idpClient),
		PhoneNumber: handlers.NewPhoneNumberHandler(phoneService),
		Block:       handlers.NewBlockHandler(blockService, phoneService),
		Customer:    handlers.NewCustomerHandler(customerService),
		User:        handlers.NewUserHandler(userService),
	})

	port := configs.AppConfig.ServerPort
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
