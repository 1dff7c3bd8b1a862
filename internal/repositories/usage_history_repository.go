package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phone_inventory/internal/models"
	"gorm.io/gorm"
)

// ErrHistoryEntryNotFound 表示历史记录未找到
var ErrHistoryEntryNotFound = errors.New("历史记录未找到")

// UsageHistoryRepository 定义了号码使用历史数据仓库的接口
type UsageHistoryRepository interface {
	// Create 追加一条使用历史记录
	Create(ctx context.Context, entry *models.UsageHistoryEntry) error
	// ListByPhoneID 按事件时间升序分页获取某号码的使用历史
	ListByPhoneID(ctx context.Context, phoneID string, limit, offset int) ([]models.UsageHistoryEntry, int64, error)
	// UpdateEventDate 修正某条历史记录的事件时间
	UpdateEventDate(ctx context.Context, historyID string, eventDate time.Time) (*models.UsageHistoryEntry, error)
	// UpsertActivation 为一批号码设置开通时间：已有 ACTIVATION 记录则
	// 整体改写其事件时间，否则为每个号码插入一条。按语义键
	// (phone_id, event_type=ACTIVATION) 判断，整个操作在一个事务内完成。
	// 返回值表示是否走了更新分支。
	UpsertActivation(ctx context.Context, phoneIDs []string, eventDate time.Time, note string) (bool, error)
}

// gormUsageHistoryRepository 是 UsageHistoryRepository 的 GORM 实现
type gormUsageHistoryRepository struct {
	db *gorm.DB
}

// NewGormUsageHistoryRepository 创建一个新的 gormUsageHistoryRepository 实例
func NewGormUsageHistoryRepository(db *gorm.DB) UsageHistoryRepository {
	return &gormUsageHistoryRepository{db: db}
}

// Create 追加一条使用历史记录
func (r *gormUsageHistoryRepository) Create(ctx context.Context, entry *models.UsageHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByPhoneID 按事件时间升序分页获取某号码的使用历史
func (r *gormUsageHistoryRepository) ListByPhoneID(ctx context.Context, phoneID string, limit, offset int) ([]models.UsageHistoryEntry, int64, error) {
	var entries []models.UsageHistoryEntry
	var totalItems int64

	queryBuilder := r.db.WithContext(ctx).Model(&models.UsageHistoryEntry{}).Where("phone_id = ?", phoneID)
	if err := queryBuilder.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	queryBuilder = queryBuilder.Order("event_date asc").Offset(offset)
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}
	if err := queryBuilder.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, totalItems, nil
}

// UpdateEventDate 修正某条历史记录的事件时间并返回更新后的记录
func (r *gormUsageHistoryRepository) UpdateEventDate(ctx context.Context, historyID string, eventDate time.Time) (*models.UsageHistoryEntry, error) {
	var entry models.UsageHistoryEntry
	if err := r.db.WithContext(ctx).Where("id = ?", historyID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryEntryNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entry).Update("event_date", eventDate).Error; err != nil {
		return nil, err
	}
	entry.EventDate = eventDate
	return &entry, nil
}

// UpsertActivation 为一批号码设置开通时间
func (r *gormUsageHistoryRepository) UpsertActivation(ctx context.Context, phoneIDs []string, eventDate time.Time, note string) (bool, error) {
	var updated bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.UsageHistoryEntry{}).
			Where("phone_id IN ? AND event_type = ?", phoneIDs, models.EventActivation).
			Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			updated = true
			return tx.Model(&models.UsageHistoryEntry{}).
				Where("phone_id IN ? AND event_type = ?", phoneIDs, models.EventActivation).
				Update("event_date", eventDate).Error
		}

		entries := make([]models.UsageHistoryEntry, 0, len(phoneIDs))
		for _, phoneID := range phoneIDs {
			entries = append(entries, models.UsageHistoryEntry{
				ID:        uuid.NewString(),
				PhoneID:   phoneID,
				EventType: models.EventActivation,
				EventDate: eventDate,
				Notes:     &note,
			})
		}
		return tx.CreateInBatches(entries, 200).Error
	})
	return updated, err
}
