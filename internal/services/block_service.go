package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
	"github.com/phone_inventory/pkg/utils"
)

// maxRangeSize 是单次范围生成允许的最大号码数
const maxRangeSize = 10000

// blockSuffixSize 是整段生成的号码数（后缀 00..99）
const blockSuffixSize = 100

// 错误定义
var ErrBlockNotFound = errors.New("该号段内没有任何号码")
var ErrGenerateSpecRequired = errors.New("必须提供号段前缀或号码范围")
var ErrInvalidRangeFormat = errors.New("号码范围格式无效，应为等长的数字串，如 02125617950 - 02125617999")
var ErrRangeTooLarge = errors.New("号码范围超出单次生成上限 10000 个")

// 批量生成时写入 ACTIVATION 记录的备注，区分两种生成方式
const (
	noteGeneratedByRange  = "批量生成 - 手动范围"
	noteGeneratedByBlock  = "批量生成 - 整百号段"
	noteActivationViaEdit = "通过号段编辑设置开通时间"
)

// GenerateRequest 描述一次批量生成请求。
// Range 非空时走范围模式，否则走前缀模式。
type GenerateRequest struct {
	Prefix string
	Range  string
}

// BlockService 定义了号段服务的接口
type BlockService interface {
	// ListBlocks 返回全部号段的汇总统计，按前缀升序
	ListBlocks() ([]models.BlockSummary, error)
	// SetActivationDate 设置某号段的开通时间，按语义键
	// (号码, ACTIVATION) 更新已有记录或插入新记录。
	// 返回受影响的号码数和是否走了更新分支。
	SetActivationDate(ctx context.Context, prefix string, date time.Time) (int, bool, error)
	// Generate 按前缀或显式范围批量生成号码，每个号码附带一条
	// ACTIVATION 历史记录，整体成功或整体失败
	Generate(req GenerateRequest) (int, error)
}

// blockService 是 BlockService 的实现
type blockService struct {
	repo        repositories.PhoneNumberRepository
	historyRepo repositories.UsageHistoryRepository
}

// NewBlockService 创建一个新的 blockService 实例
func NewBlockService(repo repositories.PhoneNumberRepository, historyRepo repositories.UsageHistoryRepository) BlockService {
	return &blockService{repo: repo, historyRepo: historyRepo}
}

// ListBlocks 返回全部号段的汇总统计
func (s *blockService) ListBlocks() ([]models.BlockSummary, error) {
	return s.repo.ListBlocks()
}

// SetActivationDate 设置某号段的开通时间
func (s *blockService) SetActivationDate(ctx context.Context, prefix string, date time.Time) (int, bool, error) {
	base := strings.TrimSuffix(strings.TrimSpace(prefix), "XX")
	if base == "" {
		return 0, false, ErrInvalidPrefix
	}

	ids, err := s.repo.FindIDsByPrefix(base)
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, ErrBlockNotFound
	}

	// 开通时间是日期语义，归一到当天零点
	day := now.New(date).BeginningOfDay()
	updated, err := s.historyRepo.UpsertActivation(ctx, ids, day, noteActivationViaEdit)
	if err != nil {
		return 0, false, err
	}
	return len(ids), updated, nil
}

// Generate 按前缀或显式范围批量生成号码
func (s *blockService) Generate(req GenerateRequest) (int, error) {
	var numbers []string
	var note string
	var err error

	switch {
	case strings.TrimSpace(req.Range) != "":
		numbers, err = expandRange(req.Range)
		note = noteGeneratedByRange
	case strings.TrimSpace(req.Prefix) != "":
		numbers, err = expandBlockPrefix(req.Prefix)
		note = noteGeneratedByBlock
	default:
		return 0, ErrGenerateSpecRequired
	}
	if err != nil {
		return 0, err
	}

	createdAt := time.Now()
	phones := make([]models.PhoneNumber, 0, len(numbers))
	entries := make([]models.UsageHistoryEntry, 0, len(numbers))
	for _, number := range numbers {
		phoneID := uuid.NewString()
		phones = append(phones, models.PhoneNumber{
			ID:            phoneID,
			Number:        number,
			CurrentStatus: models.StatusFree,
		})
		noteCopy := note
		entries = append(entries, models.UsageHistoryEntry{
			ID:        uuid.NewString(),
			PhoneID:   phoneID,
			EventType: models.EventActivation,
			EventDate: createdAt,
			Notes:     &noteCopy,
		})
	}

	if err := s.repo.CreateBatch(phones, entries); err != nil {
		return 0, err
	}
	return len(phones), nil
}

// expandRange 把 "start - end" 形式的范围展开为号码列表。
// 两端必须是等长数字串，宽度保留（保持前导零），数量受上限约束。
func expandRange(rangeSpec string) ([]string, error) {
	parts := strings.SplitN(rangeSpec, "-", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidRangeFormat
	}
	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])

	if !utils.IsNumeric(startStr) || !utils.IsNumeric(endStr) {
		return nil, ErrInvalidRangeFormat
	}
	if len(startStr) != len(endStr) {
		return nil, ErrInvalidRangeFormat
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return nil, ErrInvalidRangeFormat
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return nil, ErrInvalidRangeFormat
	}
	if end < start {
		return nil, ErrInvalidRangeFormat
	}

	count := end - start + 1
	if count > maxRangeSize {
		return nil, ErrRangeTooLarge
	}

	width := len(startStr)
	numbers := make([]string, 0, count)
	for i := start; i <= end; i++ {
		numbers = append(numbers, fmt.Sprintf("%0*d", width, i))
	}
	return numbers, nil
}

// expandBlockPrefix 把带 XX 通配的前缀展开为一个整百号段（后缀 00..99）
func expandBlockPrefix(prefix string) ([]string, error) {
	base := strings.ReplaceAll(strings.TrimSpace(prefix), "XX", "")
	if base == "" {
		return nil, ErrInvalidPrefix
	}

	numbers := make([]string, 0, blockSuffixSize)
	for i := 0; i < blockSuffixSize; i++ {
		numbers = append(numbers, fmt.Sprintf("%s%02d", base, i))
	}
	return numbers, nil
}
