package services

import (
	"errors"
	"testing"
	"time"

	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
)

func TestListCustomersMergesCurrentAndHistorical(t *testing.T) {
	db := setupTestDB(t)
	service := NewCustomerService(repositories.NewGormPhoneNumberRepository(db))

	// 甲公司：当前持有两个号码，其中一个还出现在回收历史里
	seedPhone(t, db, "p1", "02125617950", models.StatusInUse, strPtr("甲公司"))
	seedPhone(t, db, "p2", "02125617951", models.StatusInUse, strPtr("甲公司"))
	db.Create(&models.UsageHistoryEntry{
		ID: "h1", PhoneID: "p1", EventType: models.EventDeassigned,
		ClientName: strPtr("甲公司"), EventDate: time.Now().Add(-24 * time.Hour),
	})

	// 乙公司：只在历史中出现，当前没有号码
	seedPhone(t, db, "p3", "02125617952", models.StatusFree, nil)
	db.Create(&models.UsageHistoryEntry{
		ID: "h2", PhoneID: "p3", EventType: models.EventDeassigned,
		ClientName: strPtr("乙公司"), EventDate: time.Now(),
	})

	customers, err := service.ListCustomers()
	if err != nil {
		t.Fatalf("客户列表失败: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("客户数 = %d, 期望 2", len(customers))
	}

	byName := make(map[string]models.CustomerSummary, len(customers))
	for _, c := range customers {
		byName[c.ClientName] = c
	}

	jia, ok := byName["甲公司"]
	if !ok {
		t.Fatal("缺少客户 甲公司")
	}
	if jia.Status != models.CustomerActive {
		t.Errorf("甲公司状态 = %s, 期望 active", jia.Status)
	}
	// 同名客户以当前持有为准：号码数只算当前分配，不并入历史
	if jia.PhoneCount != 2 || jia.ActiveCount != 2 {
		t.Errorf("甲公司统计 = %d/%d, 期望 2/2", jia.PhoneCount, jia.ActiveCount)
	}

	yi, ok := byName["乙公司"]
	if !ok {
		t.Fatal("缺少客户 乙公司")
	}
	if yi.Status != models.CustomerInactive {
		t.Errorf("乙公司状态 = %s, 期望 inactive", yi.Status)
	}
	if yi.ActiveCount != 0 {
		t.Errorf("乙公司在用数 = %d, 期望 0", yi.ActiveCount)
	}
}

func TestListCustomersIgnoresAssignmentOnlyHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewCustomerService(repositories.NewGormPhoneNumberRepository(db))

	// 只出现在 ASSIGNED 历史里（数据修复后客户字段被清掉的场景），
	// 不应被算作历史客户
	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	db.Create(&models.UsageHistoryEntry{
		ID: "h1", PhoneID: "p1", EventType: models.EventAssigned,
		ClientName: strPtr("丙公司"), EventDate: time.Now(),
	})

	customers, err := service.ListCustomers()
	if err != nil {
		t.Fatalf("客户列表失败: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("客户数 = %d, 期望 0: %+v", len(customers), customers)
	}
}

func TestCustomerPhonesDedupAndReturnDate(t *testing.T) {
	db := setupTestDB(t)
	service := NewCustomerService(repositories.NewGormPhoneNumberRepository(db))

	// p1 当前由甲公司持有，同时有甲公司的历史记录：只应出现一次且算当前持有
	seedPhone(t, db, "p1", "02125617950", models.StatusInUse, strPtr("甲公司"))
	db.Create(&models.UsageHistoryEntry{
		ID: "h1", PhoneID: "p1", EventType: models.EventDeassigned,
		ClientName: strPtr("甲公司"), EventDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	// p2 曾被甲公司持有两次，应只保留最近一次事件的时间
	seedPhone(t, db, "p2", "02125617951", models.StatusFree, nil)
	earlier := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	db.Create(&models.UsageHistoryEntry{
		ID: "h2", PhoneID: "p2", EventType: models.EventDeassigned,
		ClientName: strPtr("甲公司"), EventDate: earlier,
	})
	db.Create(&models.UsageHistoryEntry{
		ID: "h3", PhoneID: "p2", EventType: models.EventReassigned,
		ClientName: strPtr("甲公司"), EventDate: later,
	})

	phones, err := service.CustomerPhones("甲公司")
	if err != nil {
		t.Fatalf("客户号码查询失败: %v", err)
	}
	if len(phones) != 2 {
		t.Fatalf("号码数 = %d, 期望 2: %+v", len(phones), phones)
	}

	byID := make(map[string]models.CustomerPhone, len(phones))
	for _, p := range phones {
		byID[p.ID] = p
	}

	p1 := byID["p1"]
	if !p1.IsActive || p1.ReturnDate != nil {
		t.Errorf("当前持有的号码: isActive = %v, returnDate = %v", p1.IsActive, p1.ReturnDate)
	}

	p2 := byID["p2"]
	if p2.IsActive {
		t.Error("历史号码不应标记为当前持有")
	}
	if p2.ReturnDate == nil || !p2.ReturnDate.Equal(later) {
		t.Errorf("returnDate = %v, 期望最近一次事件 %v", p2.ReturnDate, later)
	}
}

func TestCustomerPhonesRequiresName(t *testing.T) {
	db := setupTestDB(t)
	service := NewCustomerService(repositories.NewGormPhoneNumberRepository(db))

	if _, err := service.CustomerPhones("  "); !errors.Is(err, ErrCustomerNameRequired) {
		t.Errorf("err = %v, 期望 ErrCustomerNameRequired", err)
	}
}
