package db

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phone_inventory/configs"
	"github.com/phone_inventory/internal/models"
)

var gormDB *gorm.DB

// InitDB 初始化 GORM 数据库连接
// 设置了 DATABASE_URL 时连接 Postgres，否则使用本地 SQLite 文件
func InitDB() {
	// 配置 GORM 日志级别
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  logger.Warn, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // 忽略ErrRecordNotFound（记录未找到）错误
			Colorful:                  false,       // 禁用彩色打印
		},
	)
	gormConfig := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true, // 把驱动的唯一键冲突统一翻译为 gorm.ErrDuplicatedKey
	}

	var err error
	if dsn := configs.AppConfig.DatabaseURL; dsn != "" {
		gormDB, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			log.Fatalf("Failed to connect to postgres database: %v", err)
		}
		log.Println("Successfully connected to postgres database using GORM.")
	} else {
		dbPath := configs.AppConfig.SQLitePath

		// 确保数据库文件所在的目录存在
		dbDir := filepath.Dir(dbPath)
		if _, statErr := os.Stat(dbDir); os.IsNotExist(statErr) {
			log.Printf("Database directory %s does not exist, creating it...", dbDir)
			if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
				log.Fatalf("Failed to create database directory %s: %v", dbDir, mkErr)
			}
		}

		gormDB, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database %s: %v", dbPath, err)
		}
		log.Printf("Successfully connected to database using GORM: %s", dbPath)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB from GORM: %v", err)
	}

	// 设置数据库连接池参数 (可选)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移数据库表结构
	err = gormDB.AutoMigrate(
		&models.User{},
		&models.PhoneNumber{},
		&models.UsageHistoryEntry{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate database tables: %v", err)
	}
	log.Println("Database tables migrated successfully.")
}

// GetDB 返回 GORM 数据库实例
func GetDB() *gorm.DB {
	if gormDB == nil {
		log.Fatal("Database not initialized. Call InitDB first.")
	}
	return gormDB
}

// CloseDB 关闭 GORM 数据库连接 (通常在应用退出时调用)
func CloseDB() {
	if gormDB != nil {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Printf("Error getting underlying sql.DB for closing: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		log.Println("Database connection closed.")
	}
}
