package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
)

func TestApplyTransitionAssignThenDeassign(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	historyRepo := repositories.NewGormUsageHistoryRepository(db)
	service := NewPhoneNumberService(repo, historyRepo)

	id := seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)

	// 分配
	phone, err := service.ApplyTransition(id, TransitionRequest{Action: ActionAssign, ClientName: "甲公司"})
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}
	if phone.CurrentStatus != models.StatusInUse {
		t.Errorf("分配后状态 = %s, 期望 %s", phone.CurrentStatus, models.StatusInUse)
	}
	if phone.CurrentClient == nil || *phone.CurrentClient != "甲公司" {
		t.Errorf("分配后客户 = %v, 期望 甲公司", phone.CurrentClient)
	}
	if len(phone.History) != 1 || phone.History[0].EventType != models.EventAssigned {
		t.Fatalf("分配后历史 = %+v, 期望一条 ASSIGNED 记录", phone.History)
	}

	// 回收：历史记录应回填上一任客户，号码本身的客户字段被清空
	phone, err = service.ApplyTransition(id, TransitionRequest{Action: ActionDeassign})
	if err != nil {
		t.Fatalf("回收失败: %v", err)
	}
	if phone.CurrentStatus != models.StatusFree {
		t.Errorf("回收后状态 = %s, 期望 %s", phone.CurrentStatus, models.StatusFree)
	}
	if phone.CurrentClient != nil {
		t.Errorf("回收后客户 = %v, 期望 nil", phone.CurrentClient)
	}
	if len(phone.History) != 2 {
		t.Fatalf("回收后历史条数 = %d, 期望 2", len(phone.History))
	}
	last := phone.History[1]
	if last.EventType != models.EventDeassigned {
		t.Errorf("回收事件类型 = %s, 期望 %s", last.EventType, models.EventDeassigned)
	}
	if last.ClientName == nil || *last.ClientName != "甲公司" {
		t.Errorf("回收历史客户 = %v, 期望回填 甲公司", last.ClientName)
	}
}

func TestApplyTransitionReassign(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	service := NewPhoneNumberService(repo, repositories.NewGormUsageHistoryRepository(db))

	id := seedPhone(t, db, "p1", "02125617950", models.StatusInUse, strPtr("甲公司"))

	phone, err := service.ApplyTransition(id, TransitionRequest{Action: ActionReassign, ClientName: "乙公司"})
	if err != nil {
		t.Fatalf("改配失败: %v", err)
	}
	if phone.CurrentClient == nil || *phone.CurrentClient != "乙公司" {
		t.Errorf("改配后客户 = %v, 期望 乙公司", phone.CurrentClient)
	}
	if phone.CurrentStatus != models.StatusInUse {
		t.Errorf("改配后状态 = %s, 期望仍为 %s", phone.CurrentStatus, models.StatusInUse)
	}
	if len(phone.History) != 1 || phone.History[0].EventType != models.EventReassigned {
		t.Fatalf("改配历史 = %+v, 期望一条 REASSIGNED 记录", phone.History)
	}
}

func TestApplyTransitionValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	service := NewPhoneNumberService(repo, repositories.NewGormUsageHistoryRepository(db))

	id := seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)

	if _, err := service.ApplyTransition(id, TransitionRequest{Action: ActionAssign}); !errors.Is(err, ErrClientNameRequired) {
		t.Errorf("缺客户名的分配: err = %v, 期望 ErrClientNameRequired", err)
	}
	if _, err := service.ApplyTransition(id, TransitionRequest{Action: "release"}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("未知操作: err = %v, 期望 ErrInvalidAction", err)
	}
	if _, err := service.ApplyTransition("missing", TransitionRequest{Action: ActionDeassign}); !errors.Is(err, ErrPhoneNumberNotFound) {
		t.Errorf("不存在的号码: err = %v, 期望 ErrPhoneNumberNotFound", err)
	}
}

func TestBulkTransitionAtomicity(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	service := NewPhoneNumberService(repo, repositories.NewGormUsageHistoryRepository(db))

	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	seedPhone(t, db, "p2", "02125617951", models.StatusFree, nil)

	// 名单里混入一个不存在的号码，整批都不应生效
	_, err := service.BulkTransition([]string{"p1", "p2", "missing"}, TransitionRequest{Action: ActionAssign, ClientName: "甲公司"})
	if !errors.Is(err, ErrPhoneNumberNotFound) {
		t.Fatalf("err = %v, 期望 ErrPhoneNumberNotFound", err)
	}

	var phone models.PhoneNumber
	if err := db.Where("id = ?", "p1").First(&phone).Error; err != nil {
		t.Fatalf("查询号码失败: %v", err)
	}
	if phone.CurrentStatus != models.StatusFree {
		t.Errorf("失败的批量操作改变了状态: %s", phone.CurrentStatus)
	}
	var historyCount int64
	db.Model(&models.UsageHistoryEntry{}).Count(&historyCount)
	if historyCount != 0 {
		t.Errorf("失败的批量操作写入了 %d 条历史", historyCount)
	}
}

func TestBulkDeassignDoesNotBackfillClient(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	service := NewPhoneNumberService(repo, repositories.NewGormUsageHistoryRepository(db))

	seedPhone(t, db, "p1", "02125617950", models.StatusInUse, strPtr("甲公司"))
	seedPhone(t, db, "p2", "02125617951", models.StatusInUse, strPtr("乙公司"))

	count, err := service.BulkTransition([]string{"p1", "p2"}, TransitionRequest{Action: ActionDeassign})
	if err != nil {
		t.Fatalf("批量回收失败: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, 期望 2", count)
	}

	// 与单号码回收不同：批量回收的历史记录不记录前任客户
	var entries []models.UsageHistoryEntry
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("查询历史失败: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("历史条数 = %d, 期望 2", len(entries))
	}
	for _, e := range entries {
		if e.EventType != models.EventDeassigned {
			t.Errorf("事件类型 = %s, 期望 %s", e.EventType, models.EventDeassigned)
		}
		if e.ClientName != nil {
			t.Errorf("批量回收的历史客户 = %v, 期望 nil", e.ClientName)
		}
	}
}

func TestBulkTransitionEmptyIDs(t *testing.T) {
	db := setupTestDB(t)
	service := NewPhoneNumberService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	if _, err := service.BulkTransition(nil, TransitionRequest{Action: ActionDeassign}); !errors.Is(err, ErrEmptyIDSet) {
		t.Errorf("err = %v, 期望 ErrEmptyIDSet", err)
	}
}

func TestGetPhoneNumbersPrefixAcceptsWildcardSuffix(t *testing.T) {
	db := setupTestDB(t)
	service := NewPhoneNumberService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	seedPhone(t, db, "p2", "03698741205", models.StatusFree, nil)

	phones, total, err := service.GetPhoneNumbers(repositories.ListPhoneNumbersParams{Prefix: "021256179XX"})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || len(phones) != 1 || phones[0].Number != "02125617950" {
		t.Errorf("带 XX 前缀过滤结果 = %d 条, 期望只命中 02125617950", total)
	}
}

func TestEditHistoryDate(t *testing.T) {
	db := setupTestDB(t)
	historyRepo := repositories.NewGormUsageHistoryRepository(db)
	service := NewPhoneNumberService(repositories.NewGormPhoneNumberRepository(db), historyRepo)

	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	entry := models.UsageHistoryEntry{
		ID:        "h1",
		PhoneID:   "p1",
		EventType: models.EventActivation,
		EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("插入历史失败: %v", err)
	}

	newDate := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	updated, err := service.EditHistoryDate(context.Background(), "h1", newDate)
	if err != nil {
		t.Fatalf("修正日期失败: %v", err)
	}
	if !updated.EventDate.Equal(newDate) {
		t.Errorf("事件时间 = %v, 期望 %v", updated.EventDate, newDate)
	}

	if _, err := service.EditHistoryDate(context.Background(), "missing", newDate); !errors.Is(err, repositories.ErrHistoryEntryNotFound) {
		t.Errorf("err = %v, 期望 ErrHistoryEntryNotFound", err)
	}
}

func TestDeletePhoneNumberCascadesHistory(t *testing.T) {
	db := setupTestDB(t)
	service := NewPhoneNumberService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	db.Create(&models.UsageHistoryEntry{ID: "h1", PhoneID: "p1", EventType: models.EventActivation, EventDate: time.Now()})

	if err := service.DeletePhoneNumber("p1"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	var historyCount int64
	db.Model(&models.UsageHistoryEntry{}).Where("phone_id = ?", "p1").Count(&historyCount)
	if historyCount != 0 {
		t.Errorf("删除号码后仍残留 %d 条历史", historyCount)
	}

	if err := service.DeletePhoneNumber("p1"); !errors.Is(err, ErrPhoneNumberNotFound) {
		t.Errorf("重复删除: err = %v, 期望 ErrPhoneNumberNotFound", err)
	}
}

func TestDeleteBlock(t *testing.T) {
	db := setupTestDB(t)
	service := NewPhoneNumberService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	seedPhone(t, db, "p2", "02125617951", models.StatusFree, nil)
	seedPhone(t, db, "p3", "03698741205", models.StatusFree, nil)
	db.Create(&models.UsageHistoryEntry{ID: "h1", PhoneID: "p1", EventType: models.EventActivation, EventDate: time.Now()})

	deleted, err := service.DeleteBlock("021256179XX")
	if err != nil {
		t.Fatalf("删除号段失败: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, 期望 2", deleted)
	}

	var remaining int64
	db.Model(&models.PhoneNumber{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("剩余号码 = %d, 期望 1", remaining)
	}
	var historyCount int64
	db.Model(&models.UsageHistoryEntry{}).Count(&historyCount)
	if historyCount != 0 {
		t.Errorf("删除号段后仍残留 %d 条历史", historyCount)
	}

	if _, err := service.DeleteBlock("XX"); !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("空前缀: err = %v, 期望 ErrInvalidPrefix", err)
	}
}
