package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phone_inventory/internal/models"
)

// setupTestDB 为单个测试建立独立的内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.PhoneNumber{}, &models.UsageHistoryEntry{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// seedPhone 插入一个号码记录，返回其主键
func seedPhone(t *testing.T, db *gorm.DB, id, number string, status models.PhoneStatus, client *string) string {
	t.Helper()
	phone := models.PhoneNumber{
		ID:            id,
		Number:        number,
		CurrentStatus: status,
		CurrentClient: client,
	}
	if err := db.Create(&phone).Error; err != nil {
		t.Fatalf("插入测试号码 %s 失败: %v", number, err)
	}
	return id
}

func strPtr(s string) *string {
	return &s
}
