package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/phone_inventory/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，可以重用 gorm 的错误或自定义
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrNumberConflict 表示要创建的号码已存在
var ErrNumberConflict = errors.New("号码已存在，无法重复创建")

// ListPhoneNumbersParams 封装号码列表查询的过滤与分页参数
type ListPhoneNumbersParams struct {
	Search      string // 模糊匹配号码或客户名
	Status      string // 按号码状态过滤，空表示不过滤
	Prefix      string // 按号段前缀过滤（已去除 XX 后缀）
	Limit       int
	Offset      int
	WithHistory bool // 是否预加载使用历史
}

// CustomerHistoryRow 是客户历史号码查询的投影行
type CustomerHistoryRow struct {
	PhoneID   string    `gorm:"column:phone_id"`
	Number    string    `gorm:"column:number"`
	EventDate time.Time `gorm:"column:event_date"`
}

// blockRow 是号段汇总查询的投影行
type blockRow struct {
	Prefix         string     `gorm:"column:prefix"`
	Total          int64      `gorm:"column:total"`
	Used           int64      `gorm:"column:used"`
	ActivationDate *time.Time `gorm:"column:activation_date"`
}

// PhoneNumberRepository 定义了电话号码数据仓库的接口
type PhoneNumberRepository interface {
	GetByID(id string, withHistory bool) (*models.PhoneNumber, error)
	List(params ListPhoneNumbersParams) ([]models.PhoneNumber, int64, error)
	// CreateBatch 在一个事务中批量创建号码及其配套历史记录，
	// 任何一个号码与现有记录冲突则整体失败
	CreateBatch(phones []models.PhoneNumber, entries []models.UsageHistoryEntry) error
	// ApplyTransition 在一个事务中更新一批号码的状态/客户并追加历史记录，
	// ids 中任何一个号码不存在则整体失败
	ApplyTransition(ids []string, status models.PhoneStatus, client *string, entries []models.UsageHistoryEntry) error
	DeleteByID(id string) error
	// DeleteByPrefix 删除某个号段的全部号码并级联删除其历史，返回删除的号码数
	DeleteByPrefix(prefix string) (int64, error)
	FindIDsByPrefix(prefix string) ([]string, error)
	// ListBlocks 按前缀（号码去掉末尾两位）分组统计全部号码
	ListBlocks() ([]models.BlockSummary, error)
	// CurrentClients 统计当前分配中的客户
	CurrentClients() ([]models.CustomerSummary, error)
	// HistoricalClients 统计仅出现在回收/改配历史中的客户
	HistoricalClients() ([]models.CustomerSummary, error)
	CurrentPhonesByClient(clientName string) ([]models.PhoneNumber, error)
	HistoricalPhonesByClient(clientName string) ([]CustomerHistoryRow, error)
}

// gormPhoneNumberRepository 是 PhoneNumberRepository 的 GORM 实现
type gormPhoneNumberRepository struct {
	db *gorm.DB
}

// NewGormPhoneNumberRepository 创建一个新的 gormPhoneNumberRepository 实例
func NewGormPhoneNumberRepository(db *gorm.DB) PhoneNumberRepository {
	return &gormPhoneNumberRepository{db: db}
}

// GetByID 根据主键查询号码，withHistory 为 true 时一并加载按时间排序的历史
func (r *gormPhoneNumberRepository) GetByID(id string, withHistory bool) (*models.PhoneNumber, error) {
	var phone models.PhoneNumber
	tx := r.db
	if withHistory {
		tx = tx.Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_date asc")
		})
	}
	if err := tx.Where("id = ?", id).First(&phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &phone, nil
}

// List 从数据库中获取号码列表，支持搜索、状态/前缀过滤和分页
func (r *gormPhoneNumberRepository) List(params ListPhoneNumbersParams) ([]models.PhoneNumber, int64, error) {
	var phones []models.PhoneNumber
	var totalItems int64

	queryBuilder := r.db.Model(&models.PhoneNumber{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(params.Search)) + "%"
		queryBuilder = queryBuilder.Where("LOWER(number) LIKE ? OR LOWER(current_client) LIKE ?", searchTerm, searchTerm)
	}
	if params.Status != "" {
		queryBuilder = queryBuilder.Where("current_status = ?", params.Status)
	}
	if params.Prefix != "" {
		queryBuilder = queryBuilder.Where("number LIKE ?", params.Prefix+"%")
	}

	// 计算总数（在应用分页之前）
	if err := queryBuilder.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	queryBuilder = queryBuilder.Order("number asc").Offset(params.Offset)
	if params.Limit > 0 {
		queryBuilder = queryBuilder.Limit(params.Limit)
	}
	if params.WithHistory {
		queryBuilder = queryBuilder.Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_date asc")
		})
	}

	if err := queryBuilder.Find(&phones).Error; err != nil {
		return nil, 0, err
	}

	return phones, totalItems, nil
}

// CreateBatch 批量创建号码及其历史记录
func (r *gormPhoneNumberRepository) CreateBatch(phones []models.PhoneNumber, entries []models.UsageHistoryEntry) error {
	if len(phones) == 0 {
		return nil
	}

	numbers := make([]string, 0, len(phones))
	for _, p := range phones {
		numbers = append(numbers, p.Number)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// 预检号码唯一性，避免依赖各数据库方言的约束错误文本
		var existing int64
		if err := tx.Model(&models.PhoneNumber{}).Where("number IN ?", numbers).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrNumberConflict
		}

		if err := tx.CreateInBatches(phones, 200).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique constraint") || strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
				return ErrNumberConflict
			}
			return err
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(entries, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyTransition 在一个事务中完成批量状态变更与历史追加
func (r *gormPhoneNumberRepository) ApplyTransition(ids []string, status models.PhoneStatus, client *string, entries []models.UsageHistoryEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PhoneNumber{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return ErrRecordNotFound
		}

		updates := map[string]interface{}{
			"current_status": status,
			"current_client": client,
			"updated_at":     time.Now(),
		}
		if err := tx.Model(&models.PhoneNumber{}).Where("id IN ?", ids).Updates(updates).Error; err != nil {
			return err
		}

		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByID 删除单个号码并级联删除其历史记录
func (r *gormPhoneNumberRepository) DeleteByID(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var phone models.PhoneNumber
		if err := tx.Where("id = ?", id).First(&phone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		if err := tx.Where("phone_id = ?", id).Delete(&models.UsageHistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&phone).Error
	})
}

// DeleteByPrefix 删除整个号段。sqlite 默认不启用外键级联，
// 故显式先删历史再删号码，保持两种数据库下行为一致。
func (r *gormPhoneNumberRepository) DeleteByPrefix(prefix string) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		subQuery := tx.Model(&models.PhoneNumber{}).Select("id").Where("number LIKE ?", prefix+"%")
		if err := tx.Where("phone_id IN (?)", subQuery).Delete(&models.UsageHistoryEntry{}).Error; err != nil {
			return err
		}
		result := tx.Where("number LIKE ?", prefix+"%").Delete(&models.PhoneNumber{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// FindIDsByPrefix 查询某个号段内全部号码的主键
func (r *gormPhoneNumberRepository) FindIDsByPrefix(prefix string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.PhoneNumber{}).
		Where("number LIKE ?", prefix+"%").
		Order("number asc").
		Pluck("id", &ids).Error
	return ids, err
}

// ListBlocks 单条分组查询得到号段统计。
// 开通时间取号段内 ACTIVATION 事件的最早时间；COUNT(DISTINCT ...)
// 防止一个号码存在多条 ACTIVATION 记录时把号码数算多。
func (r *gormPhoneNumberRepository) ListBlocks() ([]models.BlockSummary, error) {
	var rows []blockRow
	err := r.db.Raw(`
		SELECT
			SUBSTR(p.number, 1, LENGTH(p.number) - 2) AS prefix,
			COUNT(DISTINCT p.id) AS total,
			COUNT(DISTINCT CASE WHEN p.current_status = ? THEN p.id END) AS used,
			MIN(h.event_date) AS activation_date
		FROM phone_numbers p
		LEFT JOIN usage_history h ON h.phone_id = p.id AND h.event_type = ?
		GROUP BY SUBSTR(p.number, 1, LENGTH(p.number) - 2)
		ORDER BY prefix ASC`,
		models.StatusInUse, models.EventActivation,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	blocks := make([]models.BlockSummary, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, models.BlockSummary{
			Prefix:         row.Prefix + "XX",
			Total:          row.Total,
			Used:           row.Used,
			Available:      row.Total - row.Used,
			ActivationDate: row.ActivationDate,
		})
	}
	return blocks, nil
}

// CurrentClients 按当前客户分组统计号码
func (r *gormPhoneNumberRepository) CurrentClients() ([]models.CustomerSummary, error) {
	var rows []models.CustomerSummary
	err := r.db.Raw(`
		SELECT
			p.current_client AS client_name,
			COUNT(*) AS phone_count,
			COUNT(CASE WHEN p.current_status = ? THEN 1 END) AS active_count
		FROM phone_numbers p
		WHERE p.current_client IS NOT NULL AND p.current_client <> ''
		GROUP BY p.current_client
		ORDER BY p.current_client ASC`,
		models.StatusInUse,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Status = models.CustomerActive
	}
	return rows, nil
}

// HistoricalClients 统计只出现在 DEASSIGNED/REASSIGNED 历史中、
// 当前没有任何号码的客户
func (r *gormPhoneNumberRepository) HistoricalClients() ([]models.CustomerSummary, error) {
	var rows []models.CustomerSummary
	err := r.db.Raw(`
		SELECT
			h.client_name AS client_name,
			COUNT(*) AS phone_count,
			0 AS active_count
		FROM usage_history h
		WHERE h.client_name IS NOT NULL AND h.client_name <> ''
			AND h.event_type IN ?
			AND h.client_name NOT IN (
				SELECT DISTINCT p.current_client
				FROM phone_numbers p
				WHERE p.current_client IS NOT NULL AND p.current_client <> ''
			)
		GROUP BY h.client_name
		ORDER BY h.client_name ASC`,
		[]models.HistoryEventType{models.EventDeassigned, models.EventReassigned},
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Status = models.CustomerInactive
	}
	return rows, nil
}

// CurrentPhonesByClient 查询客户当前持有的全部号码
func (r *gormPhoneNumberRepository) CurrentPhonesByClient(clientName string) ([]models.PhoneNumber, error) {
	var phones []models.PhoneNumber
	err := r.db.Where("current_client = ?", clientName).
		Order("number asc").
		Find(&phones).Error
	return phones, err
}

// HistoricalPhonesByClient 查询客户的回收/改配历史行，按事件时间倒序，
// 供上层按号码去重（同一号码保留最近一次事件）
func (r *gormPhoneNumberRepository) HistoricalPhonesByClient(clientName string) ([]CustomerHistoryRow, error) {
	var rows []CustomerHistoryRow
	err := r.db.Raw(`
		SELECT h.phone_id AS phone_id, p.number AS number, h.event_date AS event_date
		FROM usage_history h
		LEFT JOIN phone_numbers p ON p.id = h.phone_id
		WHERE h.client_name = ? AND h.event_type IN ?
		ORDER BY h.event_date DESC`,
		clientName,
		[]models.HistoryEventType{models.EventDeassigned, models.EventReassigned},
	).Scan(&rows).Error
	return rows, err
}
