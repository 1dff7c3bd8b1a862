package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
)

// ErrPhoneNumberNotFound 表示号码未找到的错误
var ErrPhoneNumberNotFound = errors.New("号码未找到")

// 错误定义
var ErrEmptyIDSet = errors.New("必须提供至少一个号码ID")
var ErrClientNameRequired = errors.New("分配操作必须提供客户名")
var ErrInvalidAction = errors.New("无效的操作类型")
var ErrInvalidPrefix = errors.New("无效的号段前缀")

// TransitionAction 定义了号码状态变更的操作类型
type TransitionAction string

const (
	// ActionAssign 将号码分配给客户
	ActionAssign TransitionAction = "assign"
	// ActionDeassign 从客户处回收号码
	ActionDeassign TransitionAction = "deassign"
	// ActionReassign 将在用号码改配给另一个客户，
	// 与 assign 的区别仅在于历史记录的事件类型
	ActionReassign TransitionAction = "reassign"
)

// TransitionRequest 描述一次状态变更请求
type TransitionRequest struct {
	Action     TransitionAction
	ClientName string
	Notes      string
}

// PhoneNumberService 定义了电话号码服务的接口
type PhoneNumberService interface {
	GetPhoneNumbers(params repositories.ListPhoneNumbersParams) ([]models.PhoneNumber, int64, error)
	GetPhoneNumberByID(id string) (*models.PhoneNumber, error)
	GetPhoneNumberHistory(ctx context.Context, phoneID string, limit, offset int) ([]models.UsageHistoryEntry, int64, error)
	// ApplyTransition 对单个号码执行状态变更。回收时会把变更前的
	// 客户名回填进 DEASSIGNED 历史记录。
	ApplyTransition(id string, req TransitionRequest) (*models.PhoneNumber, error)
	// BulkTransition 对一批号码执行同一状态变更，整体成功或整体失败。
	// 与单号码路径不同，批量回收的历史记录 clientName 一律为空。
	BulkTransition(ids []string, req TransitionRequest) (int, error)
	// EditHistoryDate 修正某条历史记录的事件时间
	EditHistoryDate(ctx context.Context, historyID string, eventDate time.Time) (*models.UsageHistoryEntry, error)
	DeletePhoneNumber(id string) error
	// DeleteBlock 删除整个号段及其全部历史，返回删除的号码数
	DeleteBlock(prefix string) (int64, error)
}

// phoneNumberService 是 PhoneNumberService 的实现
type phoneNumberService struct {
	repo        repositories.PhoneNumberRepository
	historyRepo repositories.UsageHistoryRepository
}

// NewPhoneNumberService 创建一个新的 phoneNumberService 实例
func NewPhoneNumberService(repo repositories.PhoneNumberRepository, historyRepo repositories.UsageHistoryRepository) PhoneNumberService {
	return &phoneNumberService{repo: repo, historyRepo: historyRepo}
}

// GetPhoneNumbers 处理获取号码列表的业务逻辑
func (s *phoneNumberService) GetPhoneNumbers(params repositories.ListPhoneNumbersParams) ([]models.PhoneNumber, int64, error) {
	// 前缀过滤允许带 XX 后缀传入
	params.Prefix = strings.TrimSuffix(params.Prefix, "XX")
	return s.repo.List(params)
}

// GetPhoneNumberByID 处理获取号码详情的业务逻辑，附带按时间排序的历史
func (s *phoneNumberService) GetPhoneNumberByID(id string) (*models.PhoneNumber, error) {
	phone, err := s.repo.GetByID(id, true)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPhoneNumberNotFound
		}
		return nil, err
	}
	return phone, nil
}

// GetPhoneNumberHistory 分页获取某号码的使用历史
func (s *phoneNumberService) GetPhoneNumberHistory(ctx context.Context, phoneID string, limit, offset int) ([]models.UsageHistoryEntry, int64, error) {
	if _, err := s.repo.GetByID(phoneID, false); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, 0, ErrPhoneNumberNotFound
		}
		return nil, 0, err
	}
	return s.historyRepo.ListByPhoneID(ctx, phoneID, limit, offset)
}

// resolveTransition 把操作请求归约为目标 (状态, 客户, 事件类型)。
// 所有状态变更路径都经过这一处穷尽匹配。
func resolveTransition(req TransitionRequest) (models.PhoneStatus, *string, models.HistoryEventType, error) {
	clientName := strings.TrimSpace(req.ClientName)

	switch req.Action {
	case ActionAssign:
		if clientName == "" {
			return "", nil, "", ErrClientNameRequired
		}
		return models.StatusInUse, &clientName, models.EventAssigned, nil
	case ActionDeassign:
		return models.StatusFree, nil, models.EventDeassigned, nil
	case ActionReassign:
		if clientName == "" {
			return "", nil, "", ErrClientNameRequired
		}
		return models.StatusInUse, &clientName, models.EventReassigned, nil
	default:
		return "", nil, "", ErrInvalidAction
	}
}

// notesPtr 把非空备注转成指针，空备注存 NULL
func notesPtr(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ApplyTransition 对单个号码执行状态变更
func (s *phoneNumberService) ApplyTransition(id string, req TransitionRequest) (*models.PhoneNumber, error) {
	// 0. 先读取当前记录，回收时需要变更前的客户名
	phone, err := s.repo.GetByID(id, false)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPhoneNumberNotFound
		}
		return nil, err
	}

	status, client, eventType, err := resolveTransition(req)
	if err != nil {
		return nil, err
	}

	// 回收时历史记录保留号码上一任客户，号码本身的客户字段仍被清空
	historyClient := client
	if req.Action == ActionDeassign {
		historyClient = phone.CurrentClient
	}

	entry := models.UsageHistoryEntry{
		ID:         uuid.NewString(),
		PhoneID:    id,
		EventType:  eventType,
		ClientName: historyClient,
		EventDate:  time.Now(),
		Notes:      notesPtr(req.Notes),
	}

	if err := s.repo.ApplyTransition([]string{id}, status, client, []models.UsageHistoryEntry{entry}); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPhoneNumberNotFound
		}
		return nil, err
	}

	return s.repo.GetByID(id, true)
}

// BulkTransition 对一批号码执行同一状态变更
func (s *phoneNumberService) BulkTransition(ids []string, req TransitionRequest) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDSet
	}

	status, client, eventType, err := resolveTransition(req)
	if err != nil {
		return 0, err
	}

	notes := notesPtr(req.Notes)
	now := time.Now()
	entries := make([]models.UsageHistoryEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, models.UsageHistoryEntry{
			ID:         uuid.NewString(),
			PhoneID:    id,
			EventType:  eventType,
			ClientName: client, // 批量回收不回填前任客户，记录为空
			EventDate:  now,
			Notes:      notes,
		})
	}

	if err := s.repo.ApplyTransition(ids, status, client, entries); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return 0, ErrPhoneNumberNotFound
		}
		return 0, err
	}
	return len(ids), nil
}

// EditHistoryDate 修正某条历史记录的事件时间
func (s *phoneNumberService) EditHistoryDate(ctx context.Context, historyID string, eventDate time.Time) (*models.UsageHistoryEntry, error) {
	return s.historyRepo.UpdateEventDate(ctx, historyID, eventDate)
}

// DeletePhoneNumber 删除单个号码及其历史
func (s *phoneNumberService) DeletePhoneNumber(id string) error {
	if err := s.repo.DeleteByID(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrPhoneNumberNotFound
		}
		return err
	}
	return nil
}

// DeleteBlock 删除整个号段及其全部历史
func (s *phoneNumberService) DeleteBlock(prefix string) (int64, error) {
	base := strings.TrimSuffix(strings.TrimSpace(prefix), "XX")
	if base == "" {
		return 0, ErrInvalidPrefix
	}
	return s.repo.DeleteByPrefix(base)
}
