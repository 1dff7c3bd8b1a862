package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
)

func TestGenerateByRange(t *testing.T) {
	db := setupTestDB(t)
	service := NewBlockService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	created, err := service.Generate(GenerateRequest{Range: "0100 - 0104"})
	if err != nil {
		t.Fatalf("范围生成失败: %v", err)
	}
	if created != 5 {
		t.Errorf("created = %d, 期望 5", created)
	}

	// 宽度必须保留：0100..0104，而不是 100..104
	var phones []models.PhoneNumber
	if err := db.Order("number asc").Find(&phones).Error; err != nil {
		t.Fatalf("查询号码失败: %v", err)
	}
	want := []string{"0100", "0101", "0102", "0103", "0104"}
	for i, w := range want {
		if phones[i].Number != w {
			t.Errorf("第 %d 个号码 = %s, 期望 %s", i, phones[i].Number, w)
		}
		if phones[i].CurrentStatus != models.StatusFree {
			t.Errorf("新号码 %s 状态 = %s, 期望 FREE", phones[i].Number, phones[i].CurrentStatus)
		}
	}

	// 每个号码都应带一条 ACTIVATION 记录
	var activations int64
	db.Model(&models.UsageHistoryEntry{}).Where("event_type = ?", models.EventActivation).Count(&activations)
	if activations != 5 {
		t.Errorf("ACTIVATION 记录数 = %d, 期望 5", activations)
	}
}

func TestGenerateByBlockPrefix(t *testing.T) {
	db := setupTestDB(t)
	service := NewBlockService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	created, err := service.Generate(GenerateRequest{Prefix: "021256179XX"})
	if err != nil {
		t.Fatalf("前缀生成失败: %v", err)
	}
	if created != 100 {
		t.Errorf("created = %d, 期望 100", created)
	}

	var first, last models.PhoneNumber
	db.Order("number asc").First(&first)
	db.Order("number desc").First(&last)
	if first.Number != "02125617900" || last.Number != "02125617999" {
		t.Errorf("号段边界 = [%s, %s], 期望 [02125617900, 02125617999]", first.Number, last.Number)
	}
}

func TestGenerateValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewBlockService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	cases := []struct {
		name    string
		req     GenerateRequest
		wantErr error
	}{
		{"空请求", GenerateRequest{}, ErrGenerateSpecRequired},
		{"长度不等", GenerateRequest{Range: "0100-999"}, ErrInvalidRangeFormat},
		{"非数字", GenerateRequest{Range: "01a0-0199"}, ErrInvalidRangeFormat},
		{"起止颠倒", GenerateRequest{Range: "0199-0100"}, ErrInvalidRangeFormat},
		{"缺分隔符", GenerateRequest{Range: "01000199"}, ErrInvalidRangeFormat},
		{"超出上限", GenerateRequest{Range: "10000-99999"}, ErrRangeTooLarge},
		{"纯通配前缀", GenerateRequest{Prefix: "XX"}, ErrInvalidPrefix},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Generate(tc.req); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, 期望 %v", err, tc.wantErr)
			}
		})
	}
}

func TestGenerateConflictIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	service := NewBlockService(
		repositories.NewGormPhoneNumberRepository(db),
		repositories.NewGormUsageHistoryRepository(db),
	)

	seedPhone(t, db, "p1", "0102", models.StatusFree, nil)

	// 范围里有一个号码已存在，整批都不应创建
	_, err := service.Generate(GenerateRequest{Range: "0100-0104"})
	if !errors.Is(err, repositories.ErrNumberConflict) {
		t.Fatalf("err = %v, 期望 ErrNumberConflict", err)
	}

	var total int64
	db.Model(&models.PhoneNumber{}).Count(&total)
	if total != 1 {
		t.Errorf("号码总数 = %d, 冲突失败后期望仍为 1", total)
	}
}

func TestListBlocksStats(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	service := NewBlockService(repo, repositories.NewGormUsageHistoryRepository(db))

	if _, err := service.Generate(GenerateRequest{Prefix: "021256179XX"}); err != nil {
		t.Fatalf("生成号段失败: %v", err)
	}
	// 把 30 个号码标记为在用
	if err := db.Model(&models.PhoneNumber{}).
		Where("number < ?", "02125617930").
		Updates(map[string]interface{}{"current_status": models.StatusInUse, "current_client": "甲公司"}).Error; err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}

	blocks, err := service.ListBlocks()
	if err != nil {
		t.Fatalf("号段统计失败: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("号段数 = %d, 期望 1", len(blocks))
	}
	b := blocks[0]
	if b.Prefix != "021256179XX" {
		t.Errorf("前缀 = %s, 期望 021256179XX", b.Prefix)
	}
	if b.Total != 100 || b.Used != 30 || b.Available != 70 {
		t.Errorf("统计 = %d/%d/%d, 期望 100/30/70", b.Total, b.Used, b.Available)
	}
	if b.ActivationDate == nil {
		t.Error("生成的号段应有开通时间")
	}

	// 统计是纯读取，重复调用结果一致
	again, err := service.ListBlocks()
	if err != nil {
		t.Fatalf("再次统计失败: %v", err)
	}
	if len(again) != 1 || again[0].Total != b.Total || again[0].Used != b.Used || again[0].Available != b.Available {
		t.Errorf("重复统计结果不一致: %+v vs %+v", again[0], b)
	}
}

func TestSetActivationDateUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGormPhoneNumberRepository(db)
	service := NewBlockService(repo, repositories.NewGormUsageHistoryRepository(db))

	// 手工插入没有 ACTIVATION 记录的号码
	seedPhone(t, db, "p1", "02125617950", models.StatusFree, nil)
	seedPhone(t, db, "p2", "02125617951", models.StatusFree, nil)

	date := time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC)

	// 第一次：插入分支
	count, updated, err := service.SetActivationDate(context.Background(), "021256179XX", date)
	if err != nil {
		t.Fatalf("设置开通时间失败: %v", err)
	}
	if count != 2 || updated {
		t.Errorf("count = %d, updated = %v, 期望 2/false", count, updated)
	}

	var entries []models.UsageHistoryEntry
	db.Where("event_type = ?", models.EventActivation).Find(&entries)
	if len(entries) != 2 {
		t.Fatalf("ACTIVATION 记录数 = %d, 期望 2", len(entries))
	}
	// 开通时间归一到当天零点
	for _, e := range entries {
		if e.EventDate.Hour() != 0 || e.EventDate.Minute() != 0 {
			t.Errorf("开通时间 = %v, 期望当天零点", e.EventDate)
		}
	}

	// 第二次：更新分支，不产生新记录
	newDate := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	count, updated, err = service.SetActivationDate(context.Background(), "021256179XX", newDate)
	if err != nil {
		t.Fatalf("再次设置开通时间失败: %v", err)
	}
	if count != 2 || !updated {
		t.Errorf("count = %d, updated = %v, 期望 2/true", count, updated)
	}
	var total int64
	db.Model(&models.UsageHistoryEntry{}).Where("event_type = ?", models.EventActivation).Count(&total)
	if total != 2 {
		t.Errorf("ACTIVATION 记录数 = %d, 重复设置不应新增", total)
	}

	// 空号段
	if _, _, err := service.SetActivationDate(context.Background(), "999XX", date); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("err = %v, 期望 ErrBlockNotFound", err)
	}
}
